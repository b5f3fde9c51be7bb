package filterengine

// Active reports whether the current filter state narrows results relative to
// the captured defaults. It drives a visual indicator only and must stay
// side-effect-free and cheap enough to run on every render.
//
// Before defaults are captured (initial load) nothing counts as active.
func Active(f State, defaults *State) bool {
	if defaults == nil {
		return false
	}
	return f.Text != "" ||
		f.NoticeType != defaults.NoticeType ||
		f.Date != defaults.Date ||
		f.Amount != defaults.Amount ||
		f.TotalAmount != defaults.TotalAmount ||
		f.OffenceCount != defaults.OffenceCount ||
		f.OffenceCodes.Len() != defaults.OffenceCodes.Len() ||
		f.Councils.Len() != defaults.Councils.Len()
}
