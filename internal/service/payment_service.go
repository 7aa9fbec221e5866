package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dersapp/dersapp-backend/internal/models"
	"github.com/dersapp/dersapp-backend/pkg/payment"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Installment options offered on the hosted checkout form.
var enabledInstallments = []int{1, 2, 3, 6, 9, 12}

type PaymentService struct {
	gateway       CheckoutGateway
	packageStore  PackageStore
	userStore     UserStore
	studentStore  StudentStore
	purchaseStore PurchaseStore
	paymentStore  PaymentStore
	mailer        ReceiptMailer
	callbackURL   string
	logger        *zap.Logger

	// Injectable so tests can make conversation ids deterministic.
	newConversationID func(packageID uint) string
}

func NewPaymentService(
	gateway CheckoutGateway,
	packageStore PackageStore,
	userStore UserStore,
	studentStore StudentStore,
	purchaseStore PurchaseStore,
	paymentStore PaymentStore,
	mailer ReceiptMailer,
	callbackURL string,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		gateway:           gateway,
		packageStore:      packageStore,
		userStore:         userStore,
		studentStore:      studentStore,
		purchaseStore:     purchaseStore,
		paymentStore:      paymentStore,
		mailer:            mailer,
		callbackURL:       callbackURL,
		logger:            logger,
		newConversationID: defaultConversationID,
	}
}

// defaultConversationID keeps the pkg_<id>_ prefix for traceability but
// uses a UUID instead of a timestamp so concurrent initializations can
// never collide.
func defaultConversationID(packageID uint) string {
	return fmt.Sprintf("pkg_%d_%s", packageID, uuid.NewString())
}

// InitializeCheckout creates the pending purchase and payment pair, then
// asks the gateway for a hosted checkout form. The pending rows are kept
// if the gateway call fails; the reconciliation sweep expires them.
func (s *PaymentService) InitializeCheckout(userID uint, req models.InitializePaymentRequest) (*models.CheckoutForm, error) {
	pkg, err := s.packageStore.GetByID(req.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if !pkg.IsActive {
		return nil, ErrPackageNotFound
	}

	user, err := s.userStore.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	student, err := s.studentStore.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	installments := req.InstallmentCount
	if installments == 0 {
		installments = 1
	}

	purchase := &models.StudentPackage{
		StudentID:        student.ID,
		PackageID:        pkg.ID,
		Status:           models.PurchaseStatusPending,
		PaymentStatus:    models.PaymentStatusPending,
		TotalAmount:      pkg.Price,
		InstallmentCount: installments,
	}
	if err := s.purchaseStore.Create(purchase); err != nil {
		return nil, err
	}

	conversationID := s.newConversationID(pkg.ID)

	pay := &models.Payment{
		UserID:           user.ID,
		StudentPackageID: purchase.ID,
		Amount:           pkg.Price,
		Status:           models.PaymentStatusPending,
		ConversationID:   conversationID,
	}
	if err := s.paymentStore.Create(pay); err != nil {
		return nil, err
	}

	formReq := s.buildCheckoutFormRequest(conversationID, user, student, pkg, purchase)
	result, err := s.gateway.InitializeCheckoutForm(formReq)
	if err != nil {
		s.logger.Error("checkout form initialize failed",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
		return nil, fmt.Errorf("checkout form initialize: %w", err)
	}

	if result.Status != payment.StatusSuccess {
		s.logger.Warn("gateway declined checkout form",
			zap.String("conversation_id", conversationID),
			zap.String("error_code", result.ErrorCode),
			zap.String("error_message", result.ErrorMessage))
		return nil, &GatewayDeclinedError{Message: result.ErrorMessage}
	}

	s.logger.Info("checkout form created",
		zap.String("conversation_id", conversationID),
		zap.Uint("payment_id", pay.ID),
		zap.Uint("student_package_id", purchase.ID))

	return &models.CheckoutForm{
		CheckoutFormContent: result.CheckoutFormContent,
		Token:               result.Token,
		PaymentPageURL:      result.PaymentPageURL,
		ConversationID:      conversationID,
		PaymentID:           pay.ID,
	}, nil
}

// HandleCallback finalizes the payment the gateway reports for the given
// token. A payment already in a terminal state is returned as-is without
// being rewritten.
func (s *PaymentService) HandleCallback(token string) (*models.PaymentResult, error) {
	result, err := s.gateway.RetrieveCheckoutForm(token)
	if err != nil {
		s.logger.Error("checkout form retrieve failed", zap.Error(err))
		return nil, fmt.Errorf("checkout form retrieve: %w", err)
	}

	pay, err := s.paymentStore.GetByConversationID(result.ConversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("callback for unknown conversation id",
				zap.String("conversation_id", result.ConversationID))
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if pay.Status != models.PaymentStatusPending {
		return &models.PaymentResult{
			PaymentID: pay.ID,
			Status:    pay.Status,
			Message:   "Payment already finalized",
		}, nil
	}

	purchase, err := s.purchaseStore.GetByID(pay.StudentPackageID)
	if err != nil {
		return nil, err
	}

	if result.Status == payment.StatusSuccess && result.PaymentStatus == payment.PaymentStatusSuccess {
		return s.completePayment(pay, purchase, result.PaymentID)
	}

	message := result.ErrorMessage
	if message == "" {
		message = "payment was not completed"
	}
	return s.failPayment(pay, purchase, message)
}

// MockSuccess finalizes a payment as completed without any gateway round
// trip. Development only.
func (s *PaymentService) MockSuccess(paymentID uint) (*models.PaymentResult, error) {
	pay, purchase, err := s.pendingPayment(paymentID)
	if err != nil {
		return nil, err
	}
	return s.completePayment(pay, purchase, fmt.Sprintf("mock_%d", pay.ID))
}

// MockFail finalizes a payment as failed without any gateway round trip.
// Development only.
func (s *PaymentService) MockFail(paymentID uint) (*models.PaymentResult, error) {
	pay, purchase, err := s.pendingPayment(paymentID)
	if err != nil {
		return nil, err
	}
	return s.failPayment(pay, purchase, "mock payment failure")
}

func (s *PaymentService) pendingPayment(paymentID uint) (*models.Payment, *models.StudentPackage, error) {
	pay, err := s.paymentStore.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPaymentNotFound
		}
		return nil, nil, err
	}
	if pay.Status != models.PaymentStatusPending {
		return nil, nil, ErrPaymentFinalized
	}
	purchase, err := s.purchaseStore.GetByID(pay.StudentPackageID)
	if err != nil {
		return nil, nil, err
	}
	return pay, purchase, nil
}

func (s *PaymentService) completePayment(pay *models.Payment, purchase *models.StudentPackage, gatewayPaymentID string) (*models.PaymentResult, error) {
	now := time.Now()

	pay.Status = models.PaymentStatusCompleted
	pay.IyzicoPaymentID = gatewayPaymentID
	pay.ErrorMessage = ""

	purchase.Status = models.PurchaseStatusActive
	purchase.PaymentStatus = models.PaymentStatusCompleted
	purchase.ActivationDate = &now

	if err := s.paymentStore.Finalize(pay, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("payment completed",
		zap.Uint("payment_id", pay.ID),
		zap.Uint("student_package_id", purchase.ID),
		zap.String("gateway_payment_id", gatewayPaymentID))

	s.sendReceipt(pay, purchase)

	return &models.PaymentResult{
		PaymentID: pay.ID,
		Status:    models.PaymentStatusCompleted,
		Message:   "Payment completed successfully",
	}, nil
}

func (s *PaymentService) failPayment(pay *models.Payment, purchase *models.StudentPackage, message string) (*models.PaymentResult, error) {
	pay.Status = models.PaymentStatusFailed
	pay.ErrorMessage = message

	purchase.Status = models.PurchaseStatusCancelled
	purchase.PaymentStatus = models.PaymentStatusFailed

	if err := s.paymentStore.Finalize(pay, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("payment failed",
		zap.Uint("payment_id", pay.ID),
		zap.Uint("student_package_id", purchase.ID),
		zap.String("reason", message))

	return &models.PaymentResult{
		PaymentID: pay.ID,
		Status:    models.PaymentStatusFailed,
		Message:   message,
	}, nil
}

// sendReceipt is best effort; a mail failure never fails the payment.
func (s *PaymentService) sendReceipt(pay *models.Payment, purchase *models.StudentPackage) {
	if s.mailer == nil {
		return
	}
	user, err := s.userStore.GetByID(pay.UserID)
	if err != nil {
		s.logger.Warn("receipt email skipped, user lookup failed",
			zap.Uint("payment_id", pay.ID),
			zap.Error(err))
		return
	}
	pkg, err := s.packageStore.GetByID(purchase.PackageID)
	if err != nil {
		s.logger.Warn("receipt email skipped, package lookup failed",
			zap.Uint("payment_id", pay.ID),
			zap.Error(err))
		return
	}
	if err := s.mailer.SendPaymentReceiptEmail(user.Email, user.FullName, pkg.Name, pay.Amount); err != nil {
		s.logger.Warn("receipt email failed",
			zap.Uint("payment_id", pay.ID),
			zap.Error(err))
	}
}

// PurchaseHistory returns the requesting user's purchases, newest first.
func (s *PaymentService) PurchaseHistory(userID uint) ([]models.StudentPackage, error) {
	student, err := s.studentStore.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.purchaseStore.GetByStudent(student.ID)
}

// ExpireStalePayments fails every pending payment older than the TTL and
// cancels its purchase. Covers both abandoned checkouts and pending rows
// orphaned by a gateway failure during initialization.
func (s *PaymentService) ExpireStalePayments(olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	stale, err := s.paymentStore.GetStalePending(cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range stale {
		pay := &stale[i]
		purchase, err := s.purchaseStore.GetByID(pay.StudentPackageID)
		if err != nil {
			s.logger.Warn("stale payment skipped, purchase lookup failed",
				zap.Uint("payment_id", pay.ID),
				zap.Error(err))
			continue
		}
		if _, err := s.failPayment(pay, purchase, "payment expired"); err != nil {
			s.logger.Warn("stale payment expiry failed",
				zap.Uint("payment_id", pay.ID),
				zap.Error(err))
			continue
		}
		expired++
	}
	return expired, nil
}

func (s *PaymentService) buildCheckoutFormRequest(conversationID string, user *models.User, student *models.Student, pkg *models.LessonPackage, purchase *models.StudentPackage) *payment.CheckoutFormRequest {
	price := formatPrice(pkg.Price)
	name, surname := splitFullName(user.FullName)

	city := student.City
	if city == "" {
		city = "Istanbul"
	}

	address := payment.Address{
		ContactName: user.FullName,
		City:        city,
		Country:     "Turkey",
		Description: "Dersapp online lesson platform",
	}

	return &payment.CheckoutFormRequest{
		Locale:              "tr",
		ConversationID:      conversationID,
		Price:               price,
		PaidPrice:           price,
		Currency:            "TRY",
		BasketID:            strconv.FormatUint(uint64(purchase.ID), 10),
		PaymentGroup:        "PRODUCT",
		CallbackURL:         s.callbackURL,
		EnabledInstallments: enabledInstallments,
		Buyer: payment.Buyer{
			ID:                  strconv.FormatUint(uint64(user.ID), 10),
			Name:                name,
			Surname:             surname,
			GsmNumber:           user.Phone,
			Email:               user.Email,
			IdentityNumber:      "11111111111",
			RegistrationAddress: address.Description,
			City:                city,
			Country:             "Turkey",
		},
		ShippingAddress: address,
		BillingAddress:  address,
		BasketItems: []payment.BasketItem{
			{
				ID:       strconv.FormatUint(uint64(pkg.ID), 10),
				Name:     pkg.Name,
				Category: "Lesson Package",
				ItemType: "VIRTUAL",
				Price:    price,
			},
		},
	}
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) < 2 {
		return fullName, fullName
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
