package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	custommiddleware "github.com/mmeshcher/baedariyo/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware шлюза.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))
	r.Use(h.deviceMiddleware.Middleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/config/map", h.GetMapConfig)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/user/signup", h.SignupUser)
			r.Post("/user/login", h.LoginUser)
			r.Patch("/user/withdraw", h.WithdrawUser)
			r.Post("/rider/signup", h.SignupRider)
			r.Post("/rider/login", h.LoginRider)
			r.Patch("/rider/withdraw", h.WithdrawRider)
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", h.SearchStores)
			r.Post("/", h.CreateStore)
			r.Get("/{publicId}", h.GetStoreDetail)
			r.Get("/{publicId}/menus", h.GetStoreMenus)
			r.Get("/{publicId}/reviews", h.GetStoreReviews)
			r.Post("/{publicId}/reviews", h.CreateStoreReview)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/me", h.GetMyReviews)
			r.Get("/{publicId}", h.GetReviewDetail)
			r.Delete("/{publicId}", h.DeleteMyReview)
		})

		r.Post("/orders/users/create", h.CreateOrder)
		r.Post("/orders/rider/assign", h.AssignRiderToOrder)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", h.CreatePayment)
			r.Get("/my", h.GetMyPayments)
			r.Get("/{paymentId}", h.GetPaymentDetail)
			r.Post("/{paymentId}/approve", h.ApprovePayment)
			r.Post("/{paymentId}/fail", h.FailPayment)
			r.Post("/{paymentId}/cancel", h.CancelPayment)
		})

		r.Get("/search/history", h.GetSearchHistory)

		r.Route("/local", func(r chi.Router) {
			r.Delete("/", h.ResetLocal)

			r.Get("/session", h.GetSession)
			r.Delete("/session", h.ClearSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddCartItem)
				r.Post("/items/{itemKey}/increment", h.IncrementCartItem)
				r.Post("/items/{itemKey}/decrement", h.DecrementCartItem)
				r.Delete("/items/{itemKey}", h.RemoveCartItem)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", h.GetAddressBook)
				r.Post("/", h.AddAddress)
				r.Delete("/", h.ClearAddresses)
				r.Put("/{addressId}/default", h.SetDefaultAddress)
				r.Delete("/{addressId}", h.RemoveAddress)
			})

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.SaveProfile)
			r.Delete("/profile", h.ResetProfile)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.GetNotifications)
				r.Post("/", h.PushNotification)
				r.Delete("/", h.ClearNotifications)
				r.Put("/settings", h.UpdateNotificationSettings)
				r.Post("/read-all", h.MarkAllNotificationsRead)
				r.Post("/{notificationId}/read", h.MarkNotificationRead)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
