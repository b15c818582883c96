package metrics

// Acceptance tracks the fraction of classified points that were chaotic.
type Acceptance struct {
	name     string
	accepted int
	samples  int
}

func NewAcceptance() *Acceptance {
	return &Acceptance{name: "acceptance"}
}

func (a *Acceptance) Name() string {
	return a.name
}

func (a *Acceptance) Observe(chaotic bool) {
	a.samples++
	if chaotic {
		a.accepted++
	}
}

// Value is the accepted fraction, 0 before any sample.
func (a *Acceptance) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.samples)
}

func (a *Acceptance) Reset() {
	a.accepted = 0
	a.samples = 0
}
