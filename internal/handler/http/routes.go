package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/records", func(r chi.Router) {
			r.Post("/", h.createRecord)
			r.Get("/", h.listRecords)
			r.Get("/{recordID}", h.getRecord)
			r.Put("/{recordID}", h.updateRecord)
			r.Delete("/{recordID}", h.deleteRecord)

			r.Put("/{recordID}/share", h.grantShare)
			r.Delete("/{recordID}/share/{userID}", h.revokeShare)

			r.Put("/{recordID}/lock", h.setLock)
			r.Delete("/{recordID}/lock", h.clearLock)
			r.Post("/{recordID}/reveal", h.reveal)
		})

		r.Route("/api/groups", func(r chi.Router) {
			r.Post("/", h.createGroup)
			r.Get("/{groupID}", h.getGroup)
			r.Put("/{groupID}", h.renameGroup)
			r.Delete("/{groupID}", h.deleteGroup)

			r.Put("/{groupID}/members", h.addMember)
			r.Delete("/{groupID}/members/{userID}", h.removeMember)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
