package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mapforge/mapforge/pkg/sourcefs"
	"github.com/mapforge/mapforge/pkg/vlq"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	columnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	breakStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Pretty-print a file's collapsed output and its decoded mappings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			text, sm, reg := collapseWhitespace(args[0], string(content))

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, headerStyle.Render("output"))
			fmt.Fprintln(w, text)
			fmt.Fprintln(w)
			fmt.Fprintln(w, headerStyle.Render("sources"))
			for i, id := range sm.Sources {
				reg.WithSource(id, func(src *sourcefs.Source) {
					fmt.Fprintf(w, "  %d: %s\n", i, src.Path)
				})
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, headerStyle.Render("mappings"))

			for lineNo, line := range splitMappingsByLine(sm.Mappings) {
				fmt.Fprintf(w, "%s\n", breakStyle.Render(fmt.Sprintf("line %d:", lineNo)))
				for _, seg := range splitSegments(line) {
					nums := decodeSegment(seg)
					fmt.Fprintln(w, columnStyle.Render(renderSegment(nums)))
				}
			}

			return nil
		},
	}
	return cmd
}

func splitMappingsByLine(mappings string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(mappings); i++ {
		if mappings[i] == ';' {
			lines = append(lines, mappings[start:i])
			start = i + 1
		}
	}
	lines = append(lines, mappings[start:])
	return lines
}

func splitSegments(line string) []string {
	if line == "" {
		return nil
	}
	var segs []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == ',' {
			segs = append(segs, line[start:i])
			start = i + 1
		}
	}
	segs = append(segs, line[start:])
	return segs
}

func decodeSegment(seg string) []int {
	var nums []int
	b := []byte(seg)
	for i := 0; i < len(b); {
		n, next := vlq.Decode(b, i)
		nums = append(nums, n)
		i = next
	}
	return nums
}

func renderSegment(nums []int) string {
	switch len(nums) {
	case 4:
		return fmt.Sprintf("  col %d -> source %d @ %d:%d", nums[0], nums[1], nums[2], nums[3])
	default:
		return fmt.Sprintf("  %v", nums)
	}
}
