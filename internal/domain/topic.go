package domain

// SessionTopic is one of the fixed guided-reflection topics. Topics are
// compiled into the binary and never persisted.
type SessionTopic struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Title       string `json:"titel"`
	Description string `json:"beschreibung"`
	Color       string `json:"color"`
	Prompt      string `json:"prompt"`
}

var sessionTopics = []SessionTopic{
	{
		ID:          "stress",
		Emoji:       "😤",
		Title:       "Stress & Druck",
		Description: "Was belastet dich gerade?",
		Color:       "#d4a5a5",
		Prompt:      "Der User möchte über Stress und Druck in seinem Leben nachdenken. Stelle tiefe, gezielte Fragen über die Stressquellen, wie er damit umgeht, und was er verändern könnte. Sei einfühlsam aber direkt.",
	},
	{
		ID:          "dankbarkeit",
		Emoji:       "🙏",
		Title:       "Dankbarkeit",
		Description: "Was ist gut in deinem Leben?",
		Color:       "#6b8e6f",
		Prompt:      "Der User möchte Dankbarkeit üben. Hilf ihm tiefe Dankbarkeit zu entdecken – nicht nur oberflächliche Dinge. Stelle Fragen die ihn zum Nachdenken bringen über Menschen, Momente und Chancen in seinem Leben.",
	},
	{
		ID:          "beziehungen",
		Emoji:       "❤️",
		Title:       "Beziehungen",
		Description: "Menschen in deinem Leben",
		Color:       "#a08968",
		Prompt:      "Der User möchte über seine Beziehungen nachdenken. Stelle tiefe Fragen über wichtige Menschen in seinem Leben, wie diese Beziehungen ihn prägen, und was er sich von diesen Beziehungen wünscht.",
	},
	{
		ID:          "ziele",
		Emoji:       "🎯",
		Title:       "Ziele & Träume",
		Description: "Was willst du erreichen?",
		Color:       "#7a6c5d",
		Prompt:      "Der User möchte über seine Ziele und Träume nachdenken. Stelle tiefe Fragen über seine echten Wünsche, was ihn davon abhält, und welche kleinen Schritte er jetzt machen könnte.",
	},
	{
		ID:          "selbstbild",
		Emoji:       "🪞",
		Title:       "Selbstbild",
		Description: "Wer bist du wirklich?",
		Color:       "#8b7355",
		Prompt:      "Der User möchte über sein Selbstbild nachdenken. Stelle tiefe Fragen darüber wer er ist, wie er sich selbst sieht im Vergleich zu wie andere ihn sehen, und was er an sich verändern oder akzeptieren möchte.",
	},
	{
		ID:          "energie",
		Emoji:       "⚡",
		Title:       "Energie & Motivation",
		Description: "Was gibt dir Kraft?",
		Color:       "#a4886f",
		Prompt:      "Der User möchte über seine Energie und Motivation nachdenken. Stelle Fragen darüber was ihm Energie gibt und nimmt, was ihn motiviert, und wie er mehr von dem in sein Leben bringen kann was ihn erfüllt.",
	},
}

// SessionTopics returns the fixed list of guided-session topics.
func SessionTopics() []SessionTopic {
	out := make([]SessionTopic, len(sessionTopics))
	copy(out, sessionTopics)
	return out
}

// TopicByID looks up a guided-session topic by its identifier.
func TopicByID(id string) (SessionTopic, bool) {
	for _, t := range sessionTopics {
		if t.ID == id {
			return t, true
		}
	}
	return SessionTopic{}, false
}
