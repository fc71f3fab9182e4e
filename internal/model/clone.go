package model

// Методы Clone возвращают глубокие копии: изменение копии не затрагивает оригинал.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneIntPtr(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func cloneStringPtr(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

// Clone возвращает копию группы опций.
func (g OptionGroup) Clone() OptionGroup {
	out := g
	out.MaxSelectableCount = cloneIntPtr(g.MaxSelectableCount)
	if g.Options != nil {
		out.Options = make([]Option, len(g.Options))
		copy(out.Options, g.Options)
	}
	return out
}

// Clone возвращает копию меню.
func (m Menu) Clone() Menu {
	out := m
	if m.MenuOptionGroups != nil {
		out.MenuOptionGroups = make([]OptionGroup, len(m.MenuOptionGroups))
		for i, g := range m.MenuOptionGroups {
			out.MenuOptionGroups[i] = g.Clone()
		}
	}
	return out
}

// CloneMenus копирует список меню.
func CloneMenus(in []Menu) []Menu {
	if in == nil {
		return nil
	}
	out := make([]Menu, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}

// Clone возвращает копию магазина вместе с меню и превью отзывов.
func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	out := *s
	out.Menus = CloneMenus(s.Menus)
	if s.RecentPhotoReviews != nil {
		out.RecentPhotoReviews = make([]PhotoReview, len(s.RecentPhotoReviews))
		copy(out.RecentPhotoReviews, s.RecentPhotoReviews)
	}
	return &out
}

// Clone возвращает копию отзыва.
func (r StoreReview) Clone() StoreReview {
	out := r
	out.StoreReviewImages = cloneStrings(r.StoreReviewImages)
	return out
}

// Clone возвращает копию отзыва из списка «мои отзывы».
func (r MyReview) Clone() MyReview {
	out := r
	out.OrderMenuImages = cloneStrings(r.OrderMenuImages)
	return out
}

// Clone возвращает копию детального отзыва.
func (r ReviewDetail) Clone() ReviewDetail {
	out := r
	out.StoreReviewImages = cloneStrings(r.StoreReviewImages)
	out.OrderMenuImages = cloneStrings(r.OrderMenuImages)
	return out
}

// Clone возвращает копию платежа.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	out := *p
	out.TransactionID = cloneStringPtr(p.TransactionID)
	out.Rating = cloneIntPtr(p.Rating)
	out.StoreImages = cloneStrings(p.StoreImages)
	if p.OrderMenus != nil {
		out.OrderMenus = make([]OrderMenu, len(p.OrderMenus))
		copy(out.OrderMenus, p.OrderMenus)
	}
	return &out
}
