package exarch

// ProgressFuncs adapts plain closures to ProgressCallback so callers
// don't have to implement all four methods when they only care about
// one or two events. Any nil field is a no-op.
type ProgressFuncs struct {
	EntryStart    func(path string, totalEntries, currentIndex int)
	BytesWritten  func(delta int64)
	EntryComplete func(path string)
	Complete      func()
}

func (p ProgressFuncs) OnEntryStart(path string, totalEntries, currentIndex int) {
	if p.EntryStart != nil {
		p.EntryStart(path, totalEntries, currentIndex)
	}
}

func (p ProgressFuncs) OnBytesWritten(delta int64) {
	if p.BytesWritten != nil {
		p.BytesWritten(delta)
	}
}

func (p ProgressFuncs) OnEntryComplete(path string) {
	if p.EntryComplete != nil {
		p.EntryComplete(path)
	}
}

func (p ProgressFuncs) OnComplete() {
	if p.Complete != nil {
		p.Complete()
	}
}
