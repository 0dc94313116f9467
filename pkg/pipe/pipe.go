// Package pipe builds shell pipelines out of command fragments.
package pipe

import "strings"

// Separator sits between two stages of a pipeline.
const Separator = " | "

// Head renders the first stage of a pipeline from its arguments.
type Head func(args ...string) string

// Stage renders a following stage of a pipeline.
type Stage func() string

// Pipe returns a Head that renders first(args...) followed by each stage in
// order, joined with Separator. A nil first stage renders as "".
func Pipe(first Head, next ...Stage) Head {
	return func(args ...string) string {
		var b strings.Builder
		if first != nil {
			b.WriteString(first(args...))
		}
		for _, fn := range next {
			b.WriteString(Separator)
			b.WriteString(fn())
		}
		return b.String()
	}
}

// Join joins literal stages with Separator.
func Join(stages ...string) string {
	return strings.Join(stages, Separator)
}
