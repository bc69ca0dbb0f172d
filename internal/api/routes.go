package api

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all journal routes. The router passed in must
// already carry the identity middleware; every route here touches
// user-scoped data.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.HandleChat)
		r.Get("/chat/frage", h.HandleDailyQuestion)
		r.Post("/session", h.HandleSession)
		r.Post("/woche", h.HandleWeek)
		r.Post("/spiegel", h.HandleMirror)
		r.Post("/push", h.HandleSavePush)

		r.Get("/entries", h.HandleListEntries)
		r.Post("/entries", h.HandleAppendEntry)
		r.Delete("/entries", h.HandleDeleteEntries)

		r.Get("/moods", h.HandleListMoods)
		r.Post("/moods", h.HandleAppendMood)

		r.Get("/topics", h.HandleTopics)
	})
}
