package billing

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/billing/model"
	"hotel/internal/domains/billing/model/dto"
	"hotel/internal/domains/billing/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	bill     service.Bill
	discount service.Discount
	otel     otel.Otel
}

func New(bill service.Bill, discount service.Discount, otel otel.Otel) Handler {
	return Handler{
		bill:     bill,
		discount: discount,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/Bill", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBill)
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/customer", handler.GetMyBills)
		routerGroup.Get("/{id}", handler.GetBillByID)
		routerGroup.Patch("/{id}/check", handler.CheckBill)
	})

	router.Route("/Discount", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDiscounts)
		routerGroup.Post("/", handler.CreateDiscount)
		routerGroup.Get("/{id}", handler.GetDiscountByID)
		routerGroup.Patch("/{id}", handler.UpdateDiscount)
		routerGroup.Delete("/{id}", handler.DeleteDiscount)
	})
}

// CreateBill issues the bill of a booking.
// @Summary Create a bill @Staff
// @Tags Bill
// @Accept json
// @Produce json
// @Param request body dto.CreateBillRequest true "Create Bill Request"
// @Success 201 {object} response.Data[dto.BillResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Bill [post]
// @Security BearerAuth
func (handler *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBill")
	defer scope.End()

	req := dto.CreateBillRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.bill.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create bill")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBills lists bills.
// @Summary List bills @Admin @Staff
// @Tags Bill
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param check_bill query bool false "Filter by payment state"
// @Success 200 {object} response.Data[dto.GetBillsResponse]
// @Failure 500 {object} response.Error
// @Router /api/Bill [get]
// @Security BearerAuth
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithTable(model.TableName)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if checked := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldCheckBill)); checked != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCheckBill,
			Operator: gDto.FilterOperatorEq,
			Value:    *checked,
			Table:    model.TableName,
		})
	}

	res, err := handler.bill.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyBills lists the bills of the authenticated customer.
// @Summary List my bills @Customer
// @Tags Bill
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetBillsResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Bill/customer [get]
// @Security BearerAuth
func (handler *Handler) GetMyBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithTable(model.TableName)

	res, err := handler.bill.GetByCustomer(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer bills")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBillByID returns a bill. Customers only see their own bills.
// @Summary Get a bill
// @Tags Bill
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Data[dto.BillResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Bill/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	res, err := handler.bill.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckBill marks a bill as paid.
// @Summary Mark a bill as paid @Staff
// @Tags Bill
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Message "Bill checked successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Bill/{id}/check [patch]
// @Security BearerAuth
func (handler *Handler) CheckBill(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckBill")
	defer scope.End()

	if err := handler.bill.Check(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check bill")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Bill checked successfully")
}

// CreateDiscount adds a discount scheme.
// @Summary Create a discount @Admin
// @Tags Discount
// @Accept json
// @Produce json
// @Param request body dto.CreateDiscountRequest true "Create Discount Request"
// @Success 201 {object} response.Message "Discount created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Discount [post]
// @Security BearerAuth
func (handler *Handler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDiscount")
	defer scope.End()

	req := dto.CreateDiscountRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.discount.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create discount")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Discount created successfully")
}

// GetDiscounts lists discount schemes.
// @Summary List discounts @Admin @Staff
// @Tags Discount
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Data[dto.GetDiscountsResponse]
// @Failure 500 {object} response.Error
// @Router /api/Discount [get]
// @Security BearerAuth
func (handler *Handler) GetDiscounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDiscounts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.WithTable(model.DiscountTableName)

	res, err := handler.discount.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get discounts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDiscountByID returns a discount scheme.
// @Summary Get a discount @Admin @Staff
// @Tags Discount
// @Produce json
// @Param id path string true "Discount ID"
// @Success 200 {object} response.Data[dto.DiscountResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Discount/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDiscountByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDiscountByID")
	defer scope.End()

	res, err := handler.discount.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get discount")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateDiscount updates a discount scheme.
// @Summary Update a discount @Admin
// @Tags Discount
// @Accept json
// @Produce json
// @Param id path string true "Discount ID"
// @Param request body dto.UpdateDiscountRequest true "Update Discount Request"
// @Success 200 {object} response.Message "Discount updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Discount/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDiscount")
	defer scope.End()

	req := dto.UpdateDiscountRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.discount.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update discount")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Discount updated successfully")
}

// DeleteDiscount deletes a discount no bill references.
// @Summary Delete a discount @Admin
// @Tags Discount
// @Produce json
// @Param id path string true "Discount ID"
// @Success 200 {object} response.Message "Discount deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/Discount/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDiscount")
	defer scope.End()

	if err := handler.discount.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete discount")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Discount deleted successfully")
}
