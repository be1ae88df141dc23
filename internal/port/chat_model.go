package port

import "context"

// ChatModel abstracts access to a multimodal chat-completion model.
type ChatModel interface {
	// Complete sends a plain text prompt and returns the model's reply.
	Complete(ctx context.Context, system, user string) (string, error)
	// AnalyzeImage sends a prompt together with an image reference. The
	// implementation is responsible for fetching and embedding the image.
	AnalyzeImage(ctx context.Context, system, user, imageURL string) (string, error)
	// ListModels returns the model identifiers the provider offers.
	ListModels(ctx context.Context) ([]string, error)
}
