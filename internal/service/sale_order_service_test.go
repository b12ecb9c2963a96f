package service_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"inventra/internal/dto"
	"inventra/internal/model"
	"inventra/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleOrderFixture struct {
	store      *memStore
	itemRepo   *stubItemRepo
	orderRepo  *stubSaleOrderRepo
	shipRepo   *stubShipmentRepo
	companies  *stubCompanyRepo
	invoices   *stubInvoiceGen
	dispatcher *stubDispatcher
	svc        service.SaleOrderService
	userID     uuid.UUID
}

func buildSaleOrderSvc() *saleOrderFixture {
	store := newMemStore()
	userID := uuid.New()

	itemRepo := &stubItemRepo{store: store}
	orderRepo := &stubSaleOrderRepo{store: store}
	shipRepo := &stubShipmentRepo{store: store}
	movementRepo := &stubMovementRepo{store: store}
	customerRepo := &stubCustomerRepo{store: store}
	companies := &stubCompanyRepo{company: &model.Company{
		ID:          uuid.New(),
		CompanyName: "Acme Trading",
		UserID:      userID,
	}}
	invoices := &stubInvoiceGen{}
	dispatcher := &stubDispatcher{}

	inventory := service.NewInventoryService(itemRepo, movementRepo)
	shipments := service.NewShipmentService(shipRepo)
	svc := service.NewSaleOrderService(
		&fakeTxManager{store: store}, orderRepo, itemRepo, customerRepo, companies,
		inventory, shipments, invoices, dispatcher,
	)

	return &saleOrderFixture{
		store:      store,
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
		shipRepo:   shipRepo,
		companies:  companies,
		invoices:   invoices,
		dispatcher: dispatcher,
		svc:        svc,
		userID:     userID,
	}
}

func saleReq(itemID uuid.UUID, qty int, rate string) dto.CreateSaleOrderRequest {
	return dto.CreateSaleOrderRequest{
		CustomerName:   "Jane Doe",
		ModeOfDelivery: model.DeliveryPickup,
		Carrier:        model.CarrierOther,
		Items: []dto.SaleOrderLineRequest{
			{ItemID: itemID.String(), Quantity: qty, Rate: decimal.RequireFromString(rate)},
		},
	}
}

func TestFulfillDecrementsStockAndPersistsOrder(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{
		Name:         "Widget",
		SellingPrice: decimal.RequireFromString("25.00"),
		Quantity:     10,
		UserID:       f.userID,
	})

	req := saleReq(item.ID, 3, "20.00")
	req.Discount = decimal.RequireFromString("5.00")

	resp, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.NoError(t, err)

	// 3 × 20.00 − 5.00 discount
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("55.00")),
		"got total %s", resp.TotalAmount)
	assert.Equal(t, 7, f.store.items[item.ID].Quantity)
	assert.Len(t, f.store.saleOrders, 1)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Widget", resp.Items[0].ItemName)
	assert.Equal(t, 3, resp.Items[0].Quantity)

	// One outbound movement for the line.
	require.Len(t, f.store.movements, 1)
	assert.Equal(t, "sale", f.store.movements[0].Kind)
	assert.Equal(t, -3, f.store.movements[0].Quantity)
}

func TestFulfillInsufficientStock(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{
		Name:     "Widget",
		Quantity: 2,
		UserID:   f.userID,
	})

	_, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 5, "10.00"))

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, item.ID, stockErr.ItemID)
	assert.Equal(t, "Widget", stockErr.ItemName)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)

	// Nothing committed.
	assert.Equal(t, 2, f.store.items[item.ID].Quantity)
	assert.Empty(t, f.store.saleOrders)
	assert.Empty(t, f.store.movements)
}

func TestFulfillPartialFailureRollsBackAllLines(t *testing.T) {
	f := buildSaleOrderSvc()
	plenty := f.store.addItem(model.Item{Name: "Plenty", Quantity: 100, UserID: f.userID})
	scarce := f.store.addItem(model.Item{Name: "Scarce", Quantity: 1, UserID: f.userID})

	req := dto.CreateSaleOrderRequest{
		CustomerName:   "Jane Doe",
		ModeOfDelivery: model.DeliveryPickup,
		Carrier:        model.CarrierOther,
		Items: []dto.SaleOrderLineRequest{
			{ItemID: plenty.ID.String(), Quantity: 10, Rate: decimal.RequireFromString("5.00")},
			{ItemID: scarce.ID.String(), Quantity: 2, Rate: decimal.RequireFromString("9.00")},
		},
	}

	_, err := f.svc.Fulfill(context.Background(), f.userID, req)

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Scarce", stockErr.ItemName)

	// The first line's decrement must have been rolled back too.
	assert.Equal(t, 100, f.store.items[plenty.ID].Quantity)
	assert.Equal(t, 1, f.store.items[scarce.ID].Quantity)
	assert.Empty(t, f.store.saleOrders, "no orphan order after rollback")
	assert.Empty(t, f.store.movements)
}

func TestFulfillConcurrentOrdersExactlyOneWinner(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Last Units", Quantity: 5, UserID: f.userID})

	const workers = 4
	results := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 3, "10.00"))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		var stockErr *service.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
	}
	assert.Equal(t, 1, wins, "exactly one of the competing orders may win the last units")
	assert.Equal(t, 2, f.store.items[item.ID].Quantity)
	assert.Len(t, f.store.saleOrders, 1)
}

func TestFulfillDeliveryCreatesShipment(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	req := saleReq(item.ID, 1, "10.00")
	req.ModeOfDelivery = model.DeliveryDelivery
	req.Carrier = model.CarrierFedEx

	resp, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)

	require.Len(t, f.store.shipments, 1)
	for _, sh := range f.store.shipments {
		assert.Equal(t, model.CarrierFedEx, sh.Carrier)
		assert.Equal(t, model.ShipmentInTransit, sh.Status)
		assert.Equal(t, "Jane Doe", sh.CustomerName)
		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{11}$`), sh.TrackingID)
	}
}

func TestFulfillPickupSkipsShipment(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	_, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 1, "10.00"))
	require.NoError(t, err)
	assert.Empty(t, f.store.shipments)
}

func TestFulfillShipmentFailureKeepsOrder(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})
	f.shipRepo.createErr = errBoom

	req := saleReq(item.ID, 2, "10.00")
	req.ModeOfDelivery = model.DeliveryDelivery
	req.Carrier = model.CarrierUPS

	resp, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.NoError(t, err, "a post-commit shipment failure must not fail the request")

	assert.Contains(t, resp.Warnings, "shipment creation failed; the order was saved")
	assert.Len(t, f.store.saleOrders, 1, "the order stays committed")
	assert.Equal(t, 8, f.store.items[item.ID].Quantity, "the decrement stays committed")
	assert.Empty(t, f.store.shipments)
}

func TestFulfillInvoiceFailureKeepsOrder(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})
	f.invoices.err = errBoom

	resp, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 1, "10.00"))
	require.NoError(t, err)

	assert.Contains(t, resp.Warnings, "invoice generation failed; the order was saved")
	assert.Nil(t, resp.InvoiceURL)
	assert.Len(t, f.store.saleOrders, 1)
}

func TestFulfillInvoiceAttachedAndEmailEnqueued(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})
	customer := f.store.addCustomer(model.Customer{
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		UserID: f.userID,
	})

	req := saleReq(item.ID, 1, "10.00")
	cid := customer.ID.String()
	req.CustomerID = &cid

	resp, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.NoError(t, err)

	require.NotNil(t, resp.InvoiceURL)
	assert.Equal(t, "/v1/sale-orders/"+resp.ID+"/invoice", *resp.InvoiceURL)

	require.Len(t, f.dispatcher.payloads, 1)
	payload := f.dispatcher.payloads[0]
	assert.Equal(t, resp.ID, payload["order_id"])
	assert.Equal(t, "jane@example.com", payload["customer_email"])

	// The stored order carries the invoice path.
	for _, o := range f.store.saleOrders {
		require.NotNil(t, o.InvoicePath)
	}
}

func TestFulfillUnknownCustomerProceedsWithoutEmail(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	req := saleReq(item.ID, 1, "10.00")
	ghost := uuid.New().String()
	req.CustomerID = &ghost

	resp, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.NoError(t, err, "an unresolvable customer id must not block the order")
	assert.Nil(t, resp.CustomerEmail)
	assert.Empty(t, f.dispatcher.payloads, "no email without a customer snapshot")
	assert.Len(t, f.store.saleOrders, 1)
}

func TestFulfillClientRateTakenVerbatim(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{
		Name:         "Premium",
		SellingPrice: decimal.RequireFromString("99.00"),
		Quantity:     10,
		UserID:       f.userID,
	})

	// Client sends a rate far below the catalog price; it is honored as-is.
	resp, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 2, "1.00"))
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("2.00")),
		"got total %s", resp.TotalAmount)
	assert.True(t, resp.Items[0].Rate.Equal(decimal.RequireFromString("1.00")))
}

func TestFulfillDiscountExceedingSubtotalRejected(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	req := saleReq(item.ID, 1, "10.00")
	req.Discount = decimal.RequireFromString("50.00")

	_, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.Error(t, err, "a discount above the subtotal would commit a negative total")
	assert.Contains(t, err.Error(), "discount")

	// Rejected before the transaction: no order, no decrement.
	assert.Empty(t, f.store.saleOrders)
	assert.Equal(t, 10, f.store.items[item.ID].Quantity)
}

func TestFulfillDiscountEqualToSubtotalAllowed(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	req := saleReq(item.ID, 2, "10.00")
	req.Discount = decimal.RequireFromString("20.00")

	resp, err := f.svc.Fulfill(context.Background(), f.userID, req)
	require.NoError(t, err, "a full discount is a zero-total order, not an error")
	assert.True(t, resp.TotalAmount.IsZero(), "got total %s", resp.TotalAmount)
	assert.Equal(t, 8, f.store.items[item.ID].Quantity)
}

func TestSaleOrderTimestampsAreUTC(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	resp, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 1, "10.00"))
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.CreatedAt)
	require.NoError(t, err)
	// The stub stamps a non-UTC creation time; the response must carry the
	// same instant, not the local wall clock with a pasted-on Z.
	assert.True(t, parsed.Equal(stubCreatedAt), "got %s, want instant %s", resp.CreatedAt, stubCreatedAt)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestFulfillUnknownItemFails(t *testing.T) {
	f := buildSaleOrderSvc()

	_, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(uuid.New(), 1, "10.00"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, f.store.saleOrders)
}

func TestFulfillItemFromAnotherTenantFails(t *testing.T) {
	f := buildSaleOrderSvc()
	foreign := f.store.addItem(model.Item{Name: "Not Yours", Quantity: 50, UserID: uuid.New()})

	_, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(foreign.ID, 1, "10.00"))
	require.Error(t, err)
	assert.Equal(t, 50, f.store.items[foreign.ID].Quantity)
}

func TestFulfillOrderCreateFailureRollsBackStock(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})
	f.orderRepo.failOn = errBoom

	_, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 3, "10.00"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))
	assert.Equal(t, 10, f.store.items[item.ID].Quantity)
	assert.Empty(t, f.store.saleOrders)
}

func TestUpdatePaymentTogglesFlag(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	resp, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 1, "10.00"))
	require.NoError(t, err)
	assert.False(t, resp.PaymentReceived)

	id := uuid.MustParse(resp.ID)
	updated, err := f.svc.UpdatePayment(context.Background(), f.userID, id, true)
	require.NoError(t, err)
	assert.True(t, updated.PaymentReceived)
}

func TestGetScopedToTenant(t *testing.T) {
	f := buildSaleOrderSvc()
	item := f.store.addItem(model.Item{Name: "Widget", Quantity: 10, UserID: f.userID})

	resp, err := f.svc.Fulfill(context.Background(), f.userID, saleReq(item.ID, 1, "10.00"))
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), uuid.New(), uuid.MustParse(resp.ID))
	require.Error(t, err, "another tenant must not see the order")
}
