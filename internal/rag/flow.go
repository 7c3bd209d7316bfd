package rag

import (
	"context"
	"sync"

	"github.com/firebase/genkit/go/core"
	"github.com/firebase/genkit/go/genkit"
)

// Input defines the request payload for the ask flow.
type Input struct {
	Question string `json:"question"`
}

// Output defines the response payload from the ask flow.
type Output struct {
	Answer string `json:"answer"`
}

// FlowName is the registered name of the ask flow in Genkit.
const FlowName = "resume/ask"

// Flow is the type alias for the ask flow, exported for use with
// genkit.Handler().
type Flow = core.Flow[Input, Output, struct{}]

// Genkit flow registration is global and panics on re-registration, so the
// flow is a package-level singleton.
var (
	flowOnce sync.Once
	flow     *Flow
)

// NewFlow returns the ask flow singleton, initializing it on first call.
// Subsequent calls return the existing flow (parameters are ignored).
func NewFlow(g *genkit.Genkit, engine *Engine) *Flow {
	flowOnce.Do(func() {
		flow = genkit.DefineFlow(g, FlowName,
			func(ctx context.Context, input Input) (Output, error) {
				answer, err := engine.Answer(ctx, input.Question)
				if err != nil {
					return Output{}, err
				}
				return Output{Answer: answer}, nil
			},
		)
	})
	return flow
}
