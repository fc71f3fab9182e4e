package mock

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mmeshcher/baedariyo/internal/model"
	"github.com/mmeshcher/baedariyo/internal/validation"
)

const (
	fallbackOrderStoreName   = "Mock 치킨집"
	fallbackOrderMenuName    = "메뉴"
	mockPaymentStoreName     = "Mock 결제 상점"
	mockPaymentMenuName      = "테스트 메뉴"
	mockPaymentStoreImageURL = "https://picsum.photos/seed/mock-payment/800/500"
)

var allowedTransitions = map[model.PaymentStatus][]model.PaymentStatus{
	model.PaymentStatusReady: {
		model.PaymentStatusRequested,
		model.PaymentStatusFailed,
		model.PaymentStatusCanceled,
	},
	model.PaymentStatusRequested: {
		model.PaymentStatusApproved,
		model.PaymentStatusFailed,
		model.PaymentStatusCanceled,
	},
}

func (s *State) findPayment(id int64) *model.Payment {
	for _, p := range s.payments {
		if p.PaymentID == id {
			return p
		}
	}
	return nil
}

// CreateOrder создаёт заказ и платёж в статусе READY на сумму Σ цена×количество.
func (s *State) CreateOrder(req model.CreateOrderRequest) (*model.CreateOrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storeID := req.StoreID
	if storeID <= 0 {
		storeID = 1
	}
	storeName := fallbackOrderStoreName
	if st := s.findStoreByID(storeID); st != nil {
		storeName = st.StoreName
	}

	menus := make([]model.OrderMenu, 0, len(req.Menus))
	var amount int64
	for _, m := range req.Menus {
		qty := m.Quantity
		if qty <= 0 {
			qty = 1
		}
		price := m.MenuPrice
		if price < 0 {
			price = 0
		}
		name := strings.TrimSpace(m.MenuName)
		if name == "" {
			name = fallbackOrderMenuName
		}
		if price > 0 && qty > (math.MaxInt64-amount)/price {
			return nil, fmt.Errorf("%w: order amount is out of range", validation.ErrInvalid)
		}
		amount += price * qty
		menus = append(menus, model.OrderMenu{MenuName: name, Quantity: qty, Price: price})
	}

	orderID := s.nextOrderID
	s.nextOrderID++
	paymentID := s.nextPaymentID
	s.nextPaymentID++

	p := BuildPayment(PaymentInput{
		PaymentID:   paymentID,
		OrderID:     orderID,
		StoreName:   storeName,
		Status:      model.PaymentStatusReady,
		Amount:      amount,
		PaymentKey:  fmt.Sprintf("mock_order_payment_%d", paymentID),
		CreatedAt:   s.now(),
		OrderMenus:  menus,
		StoreImages: []string{fmt.Sprintf("https://picsum.photos/seed/order-store-%d/800/500", storeID)},
	})
	s.payments = append([]*model.Payment{p}, s.payments...)

	return &model.CreateOrderResult{
		OrderID:       orderID,
		PaymentID:     paymentID,
		PaymentStatus: p.PaymentStatus,
		Amount:        amount,
	}, nil
}

// AssignRiderToOrder назначает мок-курьера на заказ.
func (s *State) AssignRiderToOrder(req model.AssignRiderRequest) (*model.AssignRiderResult, error) {
	orderID := req.OrderID
	return &model.AssignRiderResult{OrderID: &orderID, RiderID: MockRiderID, Assigned: true}, nil
}

// CreatePayment регистрирует платёж в статусе REQUESTED и возвращает его идентификатор.
func (s *State) CreatePayment(req model.CreatePaymentRequest) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paymentID := s.nextPaymentID
	s.nextPaymentID++

	orderID := req.OrderID
	if orderID <= 0 {
		orderID = s.nextOrderID
	}
	key := strings.TrimSpace(req.PaymentKey)
	if key == "" {
		key = fmt.Sprintf("mock_payment_%d", paymentID)
	}
	amount := max(req.Amount, 0)

	p := BuildPayment(PaymentInput{
		PaymentID:   paymentID,
		OrderID:     orderID,
		StoreName:   mockPaymentStoreName,
		Status:      model.PaymentStatusRequested,
		Amount:      amount,
		PaymentKey:  key,
		CreatedAt:   s.now(),
		OrderMenus:  []model.OrderMenu{{MenuName: mockPaymentMenuName, Quantity: 1, Price: amount}},
		StoreImages: []string{mockPaymentStoreImageURL},
	})
	s.payments = append([]*model.Payment{p}, s.payments...)

	return paymentID, nil
}

// ApprovePayment переводит платёж в APPROVED и сохраняет идентификатор транзакции.
func (s *State) ApprovePayment(paymentID int64, transactionID string) (*model.PaymentStatusResult, error) {
	return s.updatePaymentStatus(paymentID, model.PaymentStatusApproved, transactionID)
}

// FailPayment переводит платёж в FAILED.
func (s *State) FailPayment(paymentID int64) (*model.PaymentStatusResult, error) {
	return s.updatePaymentStatus(paymentID, model.PaymentStatusFailed, "")
}

// CancelPayment переводит платёж в CANCELED.
func (s *State) CancelPayment(paymentID int64) (*model.PaymentStatusResult, error) {
	return s.updatePaymentStatus(paymentID, model.PaymentStatusCanceled, "")
}

// updatePaymentStatus перезаписывает статус существующего платежа. Для
// неизвестного платежа возвращается ответ, который ничего не сохраняет.
func (s *State) updatePaymentStatus(paymentID int64, next model.PaymentStatus, transactionID string) (*model.PaymentStatusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txID *string
	if tx := strings.TrimSpace(transactionID); tx != "" {
		txID = &tx
	}

	p := s.findPayment(paymentID)
	if p == nil {
		return &model.PaymentStatusResult{PaymentID: paymentID, Status: next, TransactionID: txID}, nil
	}

	if s.strictTransitions && p.PaymentStatus != next &&
		!slices.Contains(allowedTransitions[p.PaymentStatus], next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.PaymentStatus, next)
	}

	p.PaymentStatus = next
	p.Status = next
	if txID != nil {
		p.TransactionID = txID
	}

	return &model.PaymentStatusResult{
		PaymentID:     p.PaymentID,
		Status:        next,
		TransactionID: cloneString(p.TransactionID),
	}, nil
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// GetPaymentDetail возвращает детали платежа. Для неизвестного платежа
// возвращается синтетический ответ в статусе READY.
func (s *State) GetPaymentDetail(paymentID int64) (*model.PaymentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPayment(paymentID)
	if p == nil {
		return &model.PaymentDetail{
			PaymentID: paymentID,
			UserID:    MockUserID,
			Status:    model.PaymentStatusReady,
			CreatedAt: s.now(),
		}, nil
	}

	orderID := p.OrderID
	return &model.PaymentDetail{
		PaymentID:     p.PaymentID,
		OrderID:       &orderID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		PaymentKey:    p.PaymentKey,
		Status:        p.PaymentStatus,
		CreatedAt:     p.CreatedAt,
		TransactionID: cloneString(p.TransactionID),
	}, nil
}

// GetMyPayments возвращает платежи, новые первыми. Непустой status оставляет
// только платежи с точно таким статусом.
func (s *State) GetMyPayments(status string) ([]*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filter := model.PaymentStatus(strings.TrimSpace(status))

	out := make([]*model.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		if filter != "" && p.PaymentStatus != filter {
			continue
		}
		out = append(out, p.Clone())
	}
	slices.SortStableFunc(out, func(a, b *model.Payment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
