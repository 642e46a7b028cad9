package fuzztests

import (
	"context"
	"testing"
	"time"

	"rsl/internal/engine"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzEngineQueries parses the input and asks for completion, hover and
// definition at every offset.
func FuzzEngineQueries(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		opts := engine.DefaultOptions()
		opts.FollowImports = false
		eng, err := engine.New(opts)
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			const id = "mem://fuzz.mac"
			eng.ParseOrReplace(id, string(input))
			for off := 0; off <= len(input); off++ {
				if ctx.Err() != nil {
					return
				}
				u := uint32(off) // #nosec G115 -- input is clamped to 64 KiB
				eng.CompletionsAt(id, u)
				eng.HoverAt(id, u)
				eng.DefinitionAt(id, u)
			}
			eng.Outline(id)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("engine hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
