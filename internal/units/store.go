package units

// SaveFunc persists preferences after a toggle.
type SaveFunc func(Preferences) error

// Store owns the process-wide unit preferences. It is read at startup and
// only changes through an explicit toggle.
type Store struct {
	prefs Preferences
	save  SaveFunc
}

// NewStore creates a store seeded with initial. save may be nil.
func NewStore(initial Preferences, save SaveFunc) *Store {
	return &Store{prefs: initial.Normalize(), save: save}
}

// Current returns the active preferences.
func (s *Store) Current() Preferences {
	if s == nil {
		return Defaults()
	}
	return s.prefs
}

// ToggleTemperature flips C/F and persists the result. The flip is kept
// even when persisting fails; the error is returned for logging.
func (s *Store) ToggleTemperature() (Preferences, error) {
	s.prefs.Temperature = s.prefs.Temperature.Toggle()
	return s.prefs, s.persist()
}

// ToggleWind flips km/h and mph and persists the result.
func (s *Store) ToggleWind() (Preferences, error) {
	s.prefs.Wind = s.prefs.Wind.Toggle()
	return s.prefs, s.persist()
}

func (s *Store) persist() error {
	if s.save == nil {
		return nil
	}
	return s.save(s.prefs)
}
