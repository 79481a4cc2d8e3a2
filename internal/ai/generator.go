package ai

import "context"

// Generator binds the OpenAI-compatible client to one configured model so the
// pipeline sees a plain prompt-in, text-out collaborator.
type Generator struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewGenerator(client *OpenAICompatibleClient, cfg ChatConfig) *Generator {
	return &Generator{client: client, cfg: cfg}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.client.Generate(ctx, g.cfg, prompt)
}
