package fast

// Class is the relation of one sample to the center intensity.
type Class int

const (
	Neutral Class = iota
	Bright
	Dark
)

func (c Class) String() string {
	switch c {
	case Bright:
		return "bright"
	case Dark:
		return "dark"
	default:
		return "neutral"
	}
}

// Classify compares sample against center +/- threshold.
func Classify(sample, center, threshold int) Class {
	switch {
	case sample > center+threshold:
		return Bright
	case sample < center-threshold:
		return Dark
	default:
		return Neutral
	}
}

// Run makes one forward pass over samples and returns the class of the first
// run that reaches minRun, or Neutral if none does. The pass does not wrap
// from index 15 back to index 0.
func Run(center int, samples [RingSize]int, threshold, minRun int) Class {
	dark, bright := 0, 0
	for _, s := range samples {
		switch Classify(s, center, threshold) {
		case Bright:
			dark = 0
			bright++
		case Dark:
			bright = 0
			dark++
		default:
			dark, bright = 0, 0
		}
		if bright >= minRun {
			return Bright
		}
		if dark >= minRun {
			return Dark
		}
	}
	return Neutral
}

// Qualifies reports whether the center pixel is a corner candidate.
func Qualifies(center int, samples [RingSize]int, threshold, minRun int) bool {
	return Run(center, samples, threshold, minRun) != Neutral
}

// RunWrapped is Run over the samples as a closed circle: an arc that crosses
// from index 15 to index 0 counts as contiguous.
func RunWrapped(center int, samples [RingSize]int, threshold, minRun int) Class {
	dark, bright := 0, 0
	// Two laps are enough to see every arc of length <= RingSize.
	for i := 0; i < 2*RingSize; i++ {
		switch Classify(samples[i%RingSize], center, threshold) {
		case Bright:
			dark = 0
			bright++
		case Dark:
			bright = 0
			dark++
		default:
			dark, bright = 0, 0
		}
		if bright >= minRun {
			return Bright
		}
		if dark >= minRun {
			return Dark
		}
	}
	return Neutral
}

// QualifiesWrapped is Qualifies with wrap-around runs.
func QualifiesWrapped(center int, samples [RingSize]int, threshold, minRun int) bool {
	return RunWrapped(center, samples, threshold, minRun) != Neutral
}
