package handler

import (
	"errors"
	"net/http"

	"github.com/mmeshcher/baedariyo/internal/localstate"
	"github.com/mmeshcher/baedariyo/internal/model"
)

func respondLocal[T any](h *Handler, w http.ResponseWriter, op string, v T, err error) {
	if err != nil {
		h.writeLocalError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ResetLocal удаляет всё состояние устройства.
func (h *Handler) ResetLocal(w http.ResponseWriter, r *http.Request) {
	if err := h.local.ResetAll(r.Context(), deviceID(r)); err != nil {
		h.writeLocalError(w, "resetAll", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSession возвращает сохранённые токены устройства.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.local.Session(r.Context(), deviceID(r))
	if errors.Is(err, localstate.ErrNoSession) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondLocal(h, w, "session", sess, err)
}

// ClearSession удаляет токены устройства.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if err := h.local.ClearSession(r.Context(), deviceID(r)); err != nil {
		h.writeLocalError(w, "clearSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCart возвращает корзину.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.local.Cart(r.Context(), deviceID(r))
	respondLocal(h, w, "cart", cart, err)
}

// AddCartItem добавляет позицию в корзину.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "addCartItem", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, "addCartItem", err)
		return
	}

	cart, err := h.local.AddCartItem(r.Context(), deviceID(r), req)
	respondLocal(h, w, "addCartItem", cart, err)
}

// IncrementCartItem увеличивает количество позиции.
func (h *Handler) IncrementCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.local.IncrementCartItem(r.Context(), deviceID(r), pathParam(r, "itemKey"))
	respondLocal(h, w, "incrementCartItem", cart, err)
}

// DecrementCartItem уменьшает количество позиции.
func (h *Handler) DecrementCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.local.DecrementCartItem(r.Context(), deviceID(r), pathParam(r, "itemKey"))
	respondLocal(h, w, "decrementCartItem", cart, err)
}

// RemoveCartItem удаляет позицию из корзины.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.local.RemoveCartItem(r.Context(), deviceID(r), pathParam(r, "itemKey"))
	respondLocal(h, w, "removeCartItem", cart, err)
}

// ClearCart очищает корзину.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.local.ClearCart(r.Context(), deviceID(r))
	respondLocal(h, w, "clearCart", cart, err)
}

// GetAddressBook возвращает адресную книгу.
func (h *Handler) GetAddressBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.local.AddressBook(r.Context(), deviceID(r))
	respondLocal(h, w, "addressBook", book, err)
}

// AddAddress добавляет адрес.
func (h *Handler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req model.AddAddressRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "addAddress", err)
		return
	}

	book, err := h.local.AddAddress(r.Context(), deviceID(r), req)
	respondLocal(h, w, "addAddress", book, err)
}

// SetDefaultAddress выбирает адрес по умолчанию.
func (h *Handler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	book, err := h.local.SetDefaultAddress(r.Context(), deviceID(r), pathParam(r, "addressId"))
	respondLocal(h, w, "setDefaultAddress", book, err)
}

// RemoveAddress удаляет адрес.
func (h *Handler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	book, err := h.local.RemoveAddress(r.Context(), deviceID(r), pathParam(r, "addressId"))
	respondLocal(h, w, "removeAddress", book, err)
}

// ClearAddresses очищает адресную книгу.
func (h *Handler) ClearAddresses(w http.ResponseWriter, r *http.Request) {
	book, err := h.local.ClearAddresses(r.Context(), deviceID(r))
	respondLocal(h, w, "clearAddresses", book, err)
}

// GetProfile возвращает профиль.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.local.Profile(r.Context(), deviceID(r))
	respondLocal(h, w, "profile", p, err)
}

// SaveProfile обновляет профиль.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var upd model.ProfileUpdate
	if err := decodeBody(r, &upd); err != nil {
		h.writeError(w, "saveProfile", err)
		return
	}

	p, err := h.local.SaveProfile(r.Context(), deviceID(r), upd)
	respondLocal(h, w, "saveProfile", p, err)
}

// ResetProfile сбрасывает профиль.
func (h *Handler) ResetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.local.ResetProfile(r.Context(), deviceID(r))
	respondLocal(h, w, "resetProfile", p, err)
}

// GetNotifications возвращает настройки и журнал уведомлений.
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	log, err := h.local.Notifications(r.Context(), deviceID(r))
	respondLocal(h, w, "notifications", log, err)
}

// PushNotification добавляет уведомление.
func (h *Handler) PushNotification(w http.ResponseWriter, r *http.Request) {
	var req model.PushNotificationRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, "pushNotification", err)
		return
	}

	log, err := h.local.PushNotification(r.Context(), deviceID(r), req)
	respondLocal(h, w, "pushNotification", log, err)
}

// UpdateNotificationSettings меняет настройки уведомлений.
func (h *Handler) UpdateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	var upd model.NotificationSettingsUpdate
	if err := decodeBody(r, &upd); err != nil {
		h.writeError(w, "updateNotificationSettings", err)
		return
	}

	log, err := h.local.UpdateNotificationSettings(r.Context(), deviceID(r), upd)
	respondLocal(h, w, "updateNotificationSettings", log, err)
}

// MarkNotificationRead отмечает уведомление прочитанным.
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	log, err := h.local.MarkNotificationRead(r.Context(), deviceID(r), pathParam(r, "notificationId"))
	respondLocal(h, w, "markNotificationRead", log, err)
}

// MarkAllNotificationsRead отмечает все уведомления прочитанными.
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	log, err := h.local.MarkAllNotificationsRead(r.Context(), deviceID(r))
	respondLocal(h, w, "markAllNotificationsRead", log, err)
}

// ClearNotifications очищает журнал уведомлений.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	log, err := h.local.ClearNotifications(r.Context(), deviceID(r))
	respondLocal(h, w, "clearNotifications", log, err)
}
