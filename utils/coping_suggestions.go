package utils

// SuggestionsForEmotion maps a detected emotion to coping exercises shown
// alongside the chat reply. Emotions without a mapping get no suggestions.
func SuggestionsForEmotion(emotion string) []string {
	switch emotion {
	case "sadness":
		return []string{
			"Try a quick 5-minute meditation",
			"Write down three things you're grateful for",
			"Take a short walk outside",
		}
	case "anger":
		return []string{
			"Practice deep breathing for 2 minutes",
			"Try progressive muscle relaxation",
			"Write down what's bothering you",
		}
	case "fear":
		return []string{
			"Try the 5-4-3-2-1 grounding technique",
			"Practice box breathing",
			"Challenge negative thoughts",
		}
	default:
		return nil
	}
}
