package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mapforge/mapforge/pkg/sink"
	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/sourcemap"
	"github.com/mapforge/mapforge/pkg/span"
)

func newBuildCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Collapse runs of whitespace in a file and emit a mapped source map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			text, sm, reg := collapseWhitespace(args[0], string(content))

			var envelope string
			if cfg.Inline {
				envelope = sourcemap.Inline(text, sm, reg)
			} else {
				envelope = text
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), envelope)
				return nil
			}
			if err := os.WriteFile(out, []byte(envelope), 0o644); err != nil {
				return err
			}
			logger.Infof("wrote %s (%d bytes)", out, len(envelope))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout if omitted)")
	return cmd
}

// collapseWhitespace is the §8 scenario-3 demo generator: it collapses
// every run of whitespace in content to a single space and emits one
// mapping per surviving word, tracking the mapping through a Buffered
// sink exactly as a real generator would.
func collapseWhitespace(path, content string) (string, sourcemap.SourceMap, sourcefs.Registry) {
	reg := sourcefs.NewScoped()
	src := reg.NewSource(path, content)

	builder := sourcemap.NewBuilder()
	s := sink.NewBuffered(builder)

	words := strings.Fields(content)
	offset := 0
	for i, w := range words {
		start := strings.Index(content[offset:], w) + offset
		end := start + len(w)

		s.AddMapping(span.SpanWithSource{Start: uint32(start), End: uint32(end), Source: src})
		s.PushString(w)

		if i != len(words)-1 {
			s.Push(' ')
		}
		offset = end
	}

	text, sm := s.Build(reg)
	return text, sm, reg
}
