package clock

// Source is the device's notion of local epoch time. It is set from NTP and
// advanced from the millisecond counter between syncs.
//
// A Source that has never been set is unsynced; Now reports that with its
// second return value rather than by returning epoch 0, which is a legitimate
// instant.
type Source struct {
	epoch  int64
	anchor uint32
	synced bool
}

// Set records that the local epoch time was epoch at counter reading now.
func (s *Source) Set(epoch int64, now uint32) {
	s.epoch = epoch
	s.anchor = now
	s.synced = true
}

// Now returns the current local epoch seconds. Whole seconds elapsed since the
// last anchor are folded into the epoch and the sub-second remainder is
// carried, so Now must be called at least once per counter wrap.
func (s *Source) Now(now uint32) (int64, bool) {
	if !s.synced {
		return 0, false
	}
	elapsed := Elapsed(now, s.anchor)
	secs := elapsed / 1000
	if secs > 0 {
		s.epoch += int64(secs)
		s.anchor += secs * 1000
	}
	return s.epoch, true
}

// Synced reports whether Set has ever been called.
func (s *Source) Synced() bool {
	return s.synced
}
