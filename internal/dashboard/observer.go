package dashboard

// Observer receives engine lifecycle events, typically to feed metrics.
// Methods are invoked on the loop goroutine.
type Observer interface {
	InsightRotated(view ActiveView)
	ScoreRevealed(view ActiveView)
	ViewMounted(view ActiveView)
	ViewTornDown(view ActiveView)
	ViewSwitched(from, to ActiveView)
	SessionsChanged(active int)
}

type nopObserver struct{}

func (nopObserver) InsightRotated(ActiveView)           {}
func (nopObserver) ScoreRevealed(ActiveView)            {}
func (nopObserver) ViewMounted(ActiveView)              {}
func (nopObserver) ViewTornDown(ActiveView)             {}
func (nopObserver) ViewSwitched(ActiveView, ActiveView) {}
func (nopObserver) SessionsChanged(int)                 {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
