package captions

// englishFallbacks are tried in this order when the preferred language is absent.
var englishFallbacks = []string{"en", "en-US", "en-GB"}

// SelectTrack picks one track: the preferred language if present, then
// en, en-US, en-GB in that order, then the first track listed.
// Reports false only when tracks is empty.
func SelectTrack(tracks []Track, preferredLanguage string) (Track, bool) {
	if len(tracks) == 0 {
		return Track{}, false
	}
	if preferredLanguage != "" {
		if t, ok := firstWithLanguage(tracks, preferredLanguage); ok {
			return t, true
		}
	}
	for _, lang := range englishFallbacks {
		if t, ok := firstWithLanguage(tracks, lang); ok {
			return t, true
		}
	}
	return tracks[0], true
}

func firstWithLanguage(tracks []Track, lang string) (Track, bool) {
	for _, t := range tracks {
		if t.Language == lang {
			return t, true
		}
	}
	return Track{}, false
}
