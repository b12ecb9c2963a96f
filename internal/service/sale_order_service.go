package service

import (
	"context"
	"fmt"
	"time"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InvoiceGenerator renders a PDF invoice for a committed order and returns the
// stored file's path relative to the invoice storage root.
type InvoiceGenerator interface {
	Generate(order *model.SaleOrder, seller *model.Company) (string, error)
}

// Dispatcher enqueues background jobs. Implemented by worker.Dispatcher.
type Dispatcher interface {
	EnqueueInvoiceEmail(ctx context.Context, payload map[string]interface{}) error
}

type SaleOrderService interface {
	// Fulfill runs the full workflow: resolve lines, atomically persist the
	// order and decrement stock, then run the best-effort post-commit steps
	// (shipment for DELIVERY orders, invoice PDF, email). Post-commit failures
	// never revert the order; they surface as warnings on the response.
	Fulfill(ctx context.Context, userID uuid.UUID, req dto.CreateSaleOrderRequest) (*dto.SaleOrderResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.SaleOrderResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*dto.SaleOrderResponse, error)
	UpdatePayment(ctx context.Context, userID, id uuid.UUID, received bool) (*dto.SaleOrderResponse, error)
}

type saleOrderService struct {
	tx           repository.TxManager
	repo         repository.SaleOrderRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	inventory    InventoryService
	shipments    ShipmentService
	invoices     InvoiceGenerator
	dispatcher   Dispatcher
}

func NewSaleOrderService(
	tx repository.TxManager,
	repo repository.SaleOrderRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	inventory InventoryService,
	shipments ShipmentService,
	invoices InvoiceGenerator,
	dispatcher Dispatcher,
) SaleOrderService {
	return &saleOrderService{
		tx:           tx,
		repo:         repo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		inventory:    inventory,
		shipments:    shipments,
		invoices:     invoices,
		dispatcher:   dispatcher,
	}
}

// ── Fulfill ──────────────────────────────────────────────────────────────────
//  1. Resolve each line's item for the tenant (unknown item is fatal) and
//     snapshot its name; the rate comes verbatim from the client.
//  2. Resolve the optional customer for the email snapshot (unknown customer
//     is NOT fatal: the order proceeds without an email).
//  3. Single transaction: create header + lines, reserve stock per line with
//     the atomic conditional decrement, record stock movements. Any failure
//     rolls everything back — no partial decrements, no orphan order.
//  4. Post-commit, best-effort: shipment (DELIVERY only), invoice PDF, email.

func (s *saleOrderService) Fulfill(ctx context.Context, userID uuid.UUID, req dto.CreateSaleOrderRequest) (*dto.SaleOrderResponse, error) {
	type resolvedLine struct {
		item   *model.Item
		qty    int
		rate   decimal.Decimal
		amount decimal.Decimal
	}

	resolved := make([]resolvedLine, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		itemID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item_id %q: %w", line.ItemID, err)
		}
		item, err := s.itemRepo.FindByID(ctx, userID, itemID)
		if err != nil {
			return nil, fmt.Errorf("item %s not found", line.ItemID)
		}
		amount := line.Rate.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(amount)
		resolved = append(resolved, resolvedLine{
			item:   item,
			qty:    line.Quantity,
			rate:   line.Rate,
			amount: amount,
		})
	}
	subtotal := total
	total = total.Sub(req.Discount)
	if total.IsNegative() {
		return nil, fmt.Errorf("discount %s exceeds order subtotal %s", req.Discount, subtotal)
	}

	var customerEmail *string
	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		if cid, err := uuid.Parse(*req.CustomerID); err == nil {
			if c, err := s.customerRepo.FindByID(ctx, userID, cid); err == nil {
				customerID = &cid
				if c.Email != "" {
					email := c.Email
					customerEmail = &email
				}
			} else {
				log.Warn().Str("customer_id", *req.CustomerID).
					Msg("customer not found; proceeding without email snapshot")
			}
		}
	}

	order := model.SaleOrder{
		CustomerID:      customerID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerState:   req.CustomerState,
		CustomerPincode: req.CustomerPincode,
		CustomerEmail:   customerEmail,
		ModeOfDelivery:  req.ModeOfDelivery,
		Carrier:         req.Carrier,
		PaymentReceived: req.PaymentReceived,
		Discount:        req.Discount,
		TotalAmount:     total,
		UserID:          userID,
	}
	for _, r := range resolved {
		order.Items = append(order.Items, model.SaleOrderItem{
			ItemID:   r.item.ID,
			ItemName: r.item.Name,
			Quantity: r.qty,
			Rate:     r.rate,
		})
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, &order); err != nil {
			return err
		}
		for _, r := range resolved {
			if err := s.inventory.Reserve(txCtx, userID, r.item, r.qty, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit steps. The order is durable at this point; failures below
	// are reported as warnings, never as a request error.
	var warnings []string

	if order.ModeOfDelivery == model.DeliveryDelivery {
		if _, err := s.shipments.CreateForOrder(ctx, &order); err != nil {
			log.Error().Err(err).Str("order_id", order.ID.String()).
				Msg("shipment creation failed after commit")
			warnings = append(warnings, "shipment creation failed; the order was saved")
		}
	}

	if s.invoices != nil {
		seller, err := s.companyRepo.FindByUser(ctx, userID)
		if err != nil {
			seller = nil
		}
		path, err := s.invoices.Generate(&order, seller)
		if err != nil {
			log.Error().Err(err).Str("order_id", order.ID.String()).
				Msg("invoice generation failed after commit")
			warnings = append(warnings, "invoice generation failed; the order was saved")
		} else {
			order.InvoicePath = &path
			if err := s.repo.UpdateInvoicePath(ctx, userID, order.ID, path); err != nil {
				warnings = append(warnings, "invoice saved but could not be attached to the order")
			}
			if s.dispatcher != nil && customerEmail != nil {
				_ = s.dispatcher.EnqueueInvoiceEmail(ctx, map[string]interface{}{
					"order_id":       order.ID.String(),
					"customer_email": *customerEmail,
					"invoice_path":   path,
				})
			}
		}
	}

	resp := saleOrderToResponse(&order)
	resp.Warnings = warnings
	return resp, nil
}

func (s *saleOrderService) List(ctx context.Context, userID uuid.UUID) ([]dto.SaleOrderResponse, error) {
	orders, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *saleOrderToResponse(&o))
	}
	return out, nil
}

func (s *saleOrderService) Get(ctx context.Context, userID, id uuid.UUID) (*dto.SaleOrderResponse, error) {
	order, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return saleOrderToResponse(order), nil
}

func (s *saleOrderService) UpdatePayment(ctx context.Context, userID, id uuid.UUID, received bool) (*dto.SaleOrderResponse, error) {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePaymentReceived(ctx, userID, id, received); err != nil {
		return nil, err
	}
	order, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return saleOrderToResponse(order), nil
}

func saleOrderToResponse(o *model.SaleOrder) *dto.SaleOrderResponse {
	lines := make([]dto.SaleOrderLineResponse, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, dto.SaleOrderLineResponse{
			ItemID:   item.ItemID.String(),
			ItemName: item.ItemName,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Amount:   item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	var invoiceURL *string
	if o.InvoicePath != nil {
		url := "/v1/sale-orders/" + o.ID.String() + "/invoice"
		invoiceURL = &url
	}

	return &dto.SaleOrderResponse{
		ID:              o.ID.String(),
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		CustomerCity:    o.CustomerCity,
		CustomerState:   o.CustomerState,
		CustomerPincode: o.CustomerPincode,
		CustomerEmail:   o.CustomerEmail,
		ModeOfDelivery:  o.ModeOfDelivery,
		Carrier:         o.Carrier,
		PaymentReceived: o.PaymentReceived,
		Discount:        o.Discount,
		TotalAmount:     o.TotalAmount,
		InvoiceURL:      invoiceURL,
		Items:           lines,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
