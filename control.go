package main

// frameKind tags which alternative of a control-stack entry is live (spec
// §3 Control stack).
type frameKind uint8

const (
	frameFor frameKind = iota
	frameGosub
)

// forFrame captures a FOR loop's state: the loop variable, its STEP and
// limit, and the cursor to resume at on NEXT (spec §3, §4.3 FOR).
type forFrame struct {
	v      varName
	step   float64
	limit  float64
	resume cursor // points at what follows the FOR header
}

// gosubFrame captures a pending RETURN target (spec §3, §4.3 GOSUB).
type gosubFrame struct {
	resume cursor // points just after the GOSUB call site
}

type controlFrame struct {
	kind  frameKind
	forF  forFrame
	gsubF gosubFrame
}

// controlStack is the single LIFO control stack described in spec §3.
// Grounded on the teacher's pushr/popr return-stack pair (internals.go),
// generalized from a single int-tagged return address to a tagged union of
// FOR/GOSUB frames.
type controlStack struct {
	frames []controlFrame
}

func newControlStack() *controlStack { return &controlStack{} }

func (s *controlStack) pushFor(f forFrame) {
	s.frames = append(s.frames, controlFrame{kind: frameFor, forF: f})
}

func (s *controlStack) pushGosub(f gosubFrame) {
	s.frames = append(s.frames, controlFrame{kind: frameGosub, gsubF: f})
}

// popForVar pops the topmost FOR frame for v (or the topmost FOR frame of
// any variable when anyVar is set), together with every frame
// above it. This implements both NEXT's "find matching loop var" rule and
// FOR's "opening a FOR with the same variable pops that frame and all
// frames above it" rule (spec §3 invariant, §4.3 FOR/NEXT).
func (s *controlStack) popForVar(v varName, anyVar bool) (forFrame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind != frameFor {
			continue
		}
		if anyVar || s.frames[i].forF.v == v {
			f := s.frames[i].forF
			s.frames = s.frames[:i]
			return f, true
		}
	}
	return forFrame{}, false
}

// pushForReplacing implements FOR's "at most one FOR frame per loop
// variable" invariant: any existing frame for v, and everything above it,
// is discarded before the new frame is pushed.
func (s *controlStack) pushForReplacing(f forFrame) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == frameFor && s.frames[i].forF.v == f.v {
			s.frames = s.frames[:i]
			break
		}
	}
	s.pushFor(f)
}

// popGosub searches top-down for the topmost GOSUB frame, popping it and
// everything above it (spec §4.3 RETURN).
func (s *controlStack) popGosub() (gosubFrame, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == frameGosub {
			f := s.frames[i].gsubF
			s.frames = s.frames[:i]
			return f, true
		}
	}
	return gosubFrame{}, false
}

func (s *controlStack) depth() int { return len(s.frames) }

func (s *controlStack) reset() { s.frames = nil }
