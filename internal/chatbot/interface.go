package chatbot

import "context"

type UseCase interface {
	// Resolve handles one user message end to end and returns the reply text
	// with the detected language.
	Resolve(ctx context.Context, ip ResolveInput) (ResolveOutput, error)
}
