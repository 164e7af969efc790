package sequenza

import (
	"errors"

	"github.com/andrewcsmith/scritto/internal/duration"
)

var (
	// ErrEmptyInput is returned when a controller is constructed from an
	// empty grouping sequence.
	ErrEmptyInput = errors.New("sequenza: empty grouping sequence")

	// ErrStackExhausted signals a read from an empty grouping stack. It
	// indicates a consumption request beyond the supplied structure.
	ErrStackExhausted = errors.New("sequenza: grouping stack is empty")

	// ErrStructureExhausted is returned when consumption requires more
	// time than the remaining groupings can supply. A caller may recover
	// by calling Extend and re-issuing the request.
	ErrStructureExhausted = errors.New("sequenza: grouping queue is empty")
)

// ControlledGrouping pairs an active grouping with its unconsumed time.
type ControlledGrouping struct {
	Grouping Grouping
	Left     duration.Duration
}

// AtStart reports whether no time has been consumed from the grouping yet.
func (c ControlledGrouping) AtStart() bool {
	return c.Left.Equal(c.Grouping.Duration())
}

// GroupingController tracks a stack of active groupings, outermost first,
// plus a queue of top-level groupings not yet entered. Consuming time
// depletes every active level in lockstep and reports each grouping the
// consumption exhausts, innermost first.
type GroupingController struct {
	stack []ControlledGrouping
	queue []Grouping
}

// NewController builds a controller from top-level groupings in playback
// order. It enters the first grouping immediately, descending one level
// into its first subdivision if it has one.
func NewController(groupings ...Grouping) (*GroupingController, error) {
	if len(groupings) == 0 {
		return nil, ErrEmptyInput
	}
	c := &GroupingController{queue: groupings}
	if err := c.replenish(); err != nil {
		return nil, err
	}
	return c, nil
}

// Extend appends groupings to the unentered queue. After an
// ErrStructureExhausted failure a caller can Extend and resume consuming.
func (c *GroupingController) Extend(groupings ...Grouping) {
	c.queue = append(c.queue, groupings...)
}

// Current returns the innermost active grouping and its remaining time.
func (c *GroupingController) Current() (ControlledGrouping, error) {
	if len(c.stack) == 0 {
		return ControlledGrouping{}, ErrStackExhausted
	}
	return c.stack[len(c.stack)-1], nil
}

// Left returns the unconsumed time of the innermost active grouping,
// entering the next queued grouping first if the structure was drained
// exactly by a previous consumption.
func (c *GroupingController) Left() (duration.Duration, error) {
	if len(c.stack) == 0 {
		if err := c.replenish(); err != nil {
			return duration.Duration{}, err
		}
	}
	return c.stack[len(c.stack)-1].Left, nil
}

// StartAnnotations returns the start annotations of every active grouping
// still at the start of its span, outermost first. Outer annotations come
// first so that a measure opens before its first beat.
func (c *GroupingController) StartAnnotations() []string {
	var out []string
	for _, cg := range c.stack {
		if !cg.AtStart() {
			continue
		}
		if a := cg.Grouping.StartAnnotation(); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// ConsumeTime removes time from every active grouping in lockstep and
// returns the groupings the consumption exhausted, innermost first. Inner
// boundaries precede outer ones so a caller can close beat-level
// annotations before barlines.
//
// Consuming exactly the remaining total is not an error; the structure is
// simply drained and the next request reports ErrStructureExhausted.
func (c *GroupingController) ConsumeTime(t duration.Duration) ([]Grouping, error) {
	var exhausted []Grouping
	for !t.IsZero() {
		if len(c.stack) == 0 {
			if err := c.replenish(); err != nil {
				return exhausted, err
			}
		}
		left := c.stack[len(c.stack)-1].Left
		switch left.Cmp(t) {
		case -1:
			// The innermost grouping ends inside this consumption: use it
			// up entirely and move on to the next one.
			t = t.Sub(left)
			c.deplete(left)
			exhausted = append(exhausted, c.advance()...)
		case +1:
			c.deplete(t)
			return exhausted, nil
		default:
			c.deplete(t)
			exhausted = append(exhausted, c.advance()...)
			return exhausted, nil
		}
	}
	return exhausted, nil
}

// deplete subtracts t from every level of the stack. Every active
// grouping is consumed simultaneously, not just the innermost.
func (c *GroupingController) deplete(t duration.Duration) {
	for i := range c.stack {
		c.stack[i].Left = c.stack[i].Left.Sub(t)
	}
}

// advance pops the exhausted innermost grouping and moves the controller
// to the next consumable position: it refills an empty stack from the
// queue, then descends one level into the new top's next subdivision. A
// parent left both empty and fully depleted is itself exhausted and is
// advanced past recursively. Returns everything popped, innermost first.
//
// Running out of queue here is not an error; the stack is left empty and
// the next consumption request reports the exhaustion.
func (c *GroupingController) advance() []Grouping {
	popped := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	out := []Grouping{popped.Grouping}

	if len(c.stack) == 0 {
		if len(c.queue) == 0 {
			return out
		}
		c.push(c.queue[0])
		c.queue = c.queue[1:]
	}

	top := c.stack[len(c.stack)-1]
	if !top.Grouping.IsEmpty() {
		c.push(top.Grouping.Next())
	} else if top.Left.IsZero() {
		out = append(out, c.advance()...)
	}
	return out
}

// replenish enters the next queued top-level grouping, descending one
// level into its first subdivision if it has one.
func (c *GroupingController) replenish() error {
	if len(c.queue) == 0 {
		return ErrStructureExhausted
	}
	g := c.queue[0]
	c.queue = c.queue[1:]
	c.push(g)
	if !g.IsEmpty() {
		c.push(g.Next())
	}
	return nil
}

func (c *GroupingController) push(g Grouping) {
	c.stack = append(c.stack, ControlledGrouping{Grouping: g, Left: g.Duration()})
}

// depth reports the number of active stack levels. Test hook.
func (c *GroupingController) depth() int { return len(c.stack) }

// level returns the controlled grouping at stack position i, outermost
// first. Test hook.
func (c *GroupingController) level(i int) ControlledGrouping { return c.stack[i] }
