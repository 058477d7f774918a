// Package http exposes the tracking, inventory and alert operations over
// REST. It coordinates between HTTP handlers and application use cases;
// domain rejections are translated to status codes and stable reason codes,
// never to human text.
package http

import (
	"errors"
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/inventory"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/step"
	"shiptrack/internal/core/domain/services/sequencing"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler   commands.CreateShipmentCommandHandler
	updateStepHandler       commands.UpdateStepCommandHandler
	cancelShipmentHandler   commands.CancelShipmentCommandHandler
	raiseExceptionHandler   commands.RaiseExceptionCommandHandler
	resolveExceptionHandler commands.ResolveExceptionCommandHandler
	receiveLotHandler       commands.ReceiveLotCommandHandler
	allocateGoodsHandler    commands.AllocateGoodsCommandHandler
	linkShipmentsHandler    commands.LinkShipmentsCommandHandler
	refreshShipmentHandler  commands.RefreshShipmentStatusCommandHandler

	// Query handlers
	getShipmentBoardHandler queries.GetShipmentBoardQueryHandler
	getShipmentStepsHandler queries.GetShipmentStepsQueryHandler
	getLotBalancesHandler   queries.GetLotBalancesQueryHandler
	getUserAlertsHandler    queries.GetUserAlertsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	updateStepHandler commands.UpdateStepCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	raiseExceptionHandler commands.RaiseExceptionCommandHandler,
	resolveExceptionHandler commands.ResolveExceptionCommandHandler,
	receiveLotHandler commands.ReceiveLotCommandHandler,
	allocateGoodsHandler commands.AllocateGoodsCommandHandler,
	linkShipmentsHandler commands.LinkShipmentsCommandHandler,
	refreshShipmentHandler commands.RefreshShipmentStatusCommandHandler,
	getShipmentBoardHandler queries.GetShipmentBoardQueryHandler,
	getShipmentStepsHandler queries.GetShipmentStepsQueryHandler,
	getLotBalancesHandler queries.GetLotBalancesQueryHandler,
	getUserAlertsHandler queries.GetUserAlertsQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:   createShipmentHandler,
		updateStepHandler:       updateStepHandler,
		cancelShipmentHandler:   cancelShipmentHandler,
		raiseExceptionHandler:   raiseExceptionHandler,
		resolveExceptionHandler: resolveExceptionHandler,
		receiveLotHandler:       receiveLotHandler,
		allocateGoodsHandler:    allocateGoodsHandler,
		linkShipmentsHandler:    linkShipmentsHandler,
		refreshShipmentHandler:  refreshShipmentHandler,
		getShipmentBoardHandler: getShipmentBoardHandler,
		getShipmentStepsHandler: getShipmentStepsHandler,
		getLotBalancesHandler:   getLotBalancesHandler,
		getUserAlertsHandler:    getUserAlertsHandler,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func RegisterRoutes(e *echo.Echo, s *Server) {
	v1 := e.Group("/api/v1")

	v1.POST("/shipments", s.CreateShipment)
	v1.GET("/shipments/board", s.GetShipmentBoard)
	v1.GET("/shipments/:shipmentId/steps", s.GetShipmentSteps)
	v1.POST("/shipments/:shipmentId/cancel", s.CancelShipment)
	v1.POST("/shipments/:shipmentId/exceptions", s.RaiseException)
	v1.POST("/shipments/:shipmentId/lots", s.ReceiveLot)
	v1.POST("/shipments/:shipmentId/links", s.LinkShipments)
	v1.POST("/shipments/:shipmentId/refresh", s.RefreshShipmentStatus)
	v1.POST("/exceptions/:exceptionId/resolve", s.ResolveException)
	v1.PATCH("/steps/:stepId", s.UpdateStep)
	v1.POST("/steps/:stepId/allocations", s.AllocateGoods)
	v1.GET("/owners/:ownerUserId/lot-balances", s.GetLotBalances)
	v1.GET("/users/:userId/alerts", s.GetUserAlerts)
}

// CreateShipment handles POST /api/v1/shipments - opens a shipment on a
// workflow variant and instantiates its steps.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req CreateShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerUserID, err := kernel.UUIDFromString(req.OwnerUserID)
	if err != nil {
		return badRequest(ctx, "Invalid owner user ID")
	}

	customerPartyIDs := make([]kernel.UUID, 0, len(req.CustomerPartyIDs))
	for _, raw := range req.CustomerPartyIDs {
		partyID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid customer party ID")
		}
		customerPartyIDs = append(customerPartyIDs, partyID)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, req.WorkflowCode, ownerUserID, customerPartyIDs)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if handleErr := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{ID: shipmentID.String()})
}

// UpdateStep handles PATCH /api/v1/steps/:stepId - merges a field patch,
// removes paths and optionally overrides status or notes. The whole edit is
// rejected when it would enter tracking data ahead of its predecessor.
func (s *Server) UpdateStep(ctx echo.Context) error {
	stepID, err := kernel.UUIDFromString(ctx.Param("stepId"))
	if err != nil {
		return badRequest(ctx, "Invalid step ID")
	}

	var req UpdateStepRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var manualStatus *step.Status
	if req.Status != nil {
		parsed, statusErr := step.StatusFromString(*req.Status)
		if statusErr != nil {
			return badRequest(ctx, "Invalid step status")
		}
		manualStatus = &parsed
	}

	cmd, err := commands.NewUpdateStepCommand(stepID, req.Fields, req.RemovePaths, manualStatus, req.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid step data: "+err.Error())
	}

	if handleErr := s.updateStepHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelShipment handles POST /api/v1/shipments/:shipmentId/cancel - freezes
// the shipment in the manual Cancelled state. Cancelling twice is a no-op.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID")
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if handleErr := s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RaiseException handles POST /api/v1/shipments/:shipmentId/exceptions.
func (s *Server) RaiseException(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID")
	}

	var req RaiseExceptionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	exceptionTypeID, err := kernel.UUIDFromString(req.ExceptionTypeID)
	if err != nil {
		return badRequest(ctx, "Invalid exception type ID")
	}

	defaultRisk, err := shipment.RiskFromString(req.DefaultRisk)
	if err != nil {
		return badRequest(ctx, "Invalid default risk")
	}

	exceptionID := kernel.NewUUID()
	cmd, err := commands.NewRaiseExceptionCommand(exceptionID, shipmentID, exceptionTypeID, defaultRisk)
	if err != nil {
		return badRequest(ctx, "Invalid exception data: "+err.Error())
	}

	if handleErr := s.raiseExceptionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, RaiseExceptionResponse{ID: exceptionID.String()})
}

// ResolveException handles POST /api/v1/exceptions/:exceptionId/resolve.
func (s *Server) ResolveException(ctx echo.Context) error {
	exceptionID, err := kernel.UUIDFromString(ctx.Param("exceptionId"))
	if err != nil {
		return badRequest(ctx, "Invalid exception ID")
	}

	cmd, err := commands.NewResolveExceptionCommand(exceptionID)
	if err != nil {
		return badRequest(ctx, "Invalid exception data: "+err.Error())
	}

	if handleErr := s.resolveExceptionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReceiveLot handles POST /api/v1/shipments/:shipmentId/lots - records goods
// received on a shipment along with the ledger entry crediting the owner.
func (s *Server) ReceiveLot(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID")
	}

	var req ReceiveLotRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	goodID, err := kernel.UUIDFromString(req.GoodID)
	if err != nil {
		return badRequest(ctx, "Invalid good ID")
	}

	ownerUserID, err := kernel.UUIDFromString(req.OwnerUserID)
	if err != nil {
		return badRequest(ctx, "Invalid owner user ID")
	}

	var customerPartyID *kernel.UUID
	if req.CustomerPartyID != nil {
		partyID, idErr := kernel.UUIDFromString(*req.CustomerPartyID)
		if idErr != nil {
			return badRequest(ctx, "Invalid customer party ID")
		}
		customerPartyID = &partyID
	}

	lotID := kernel.NewUUID()
	cmd, err := commands.NewReceiveLotCommand(
		lotID, shipmentID, goodID, ownerUserID,
		customerPartyID, req.AppliesToAllCustomers, req.Quantity,
	)
	if err != nil {
		return badRequest(ctx, "Invalid lot data: "+err.Error())
	}

	if handleErr := s.receiveLotHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, ReceiveLotResponse{ID: lotID.String()})
}

// LinkShipments handles POST /api/v1/shipments/:shipmentId/links - pools
// goods between two shipments. Linking an already linked pair is a no-op.
func (s *Server) LinkShipments(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID")
	}

	var req LinkShipmentsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	otherShipmentID, err := kernel.UUIDFromString(req.OtherShipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid other shipment ID")
	}

	cmd, err := commands.NewLinkShipmentsCommand(shipmentID, otherShipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid link data: "+err.Error())
	}

	if handleErr := s.linkShipmentsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefreshShipmentStatus handles POST /api/v1/shipments/:shipmentId/refresh -
// re-derives the shipment's status, risk and deadline alerts on demand.
// With ?touch=true the shipment's updated_at is bumped even when the derived
// state comes out unchanged.
func (s *Server) RefreshShipmentStatus(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID")
	}

	touch := ctx.QueryParam("touch") == "true"

	cmd, err := commands.NewRefreshShipmentStatusCommand(shipmentID, touch)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if handleErr := s.refreshShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AllocateGoods handles POST /api/v1/steps/:stepId/allocations - grants
// quantities from lots to a step. Processable lots are granted; the rest
// are reported as skips, never as a batch failure.
func (s *Server) AllocateGoods(ctx echo.Context) error {
	stepID, err := kernel.UUIDFromString(ctx.Param("stepId"))
	if err != nil {
		return badRequest(ctx, "Invalid step ID")
	}

	var req AllocateGoodsRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requests := make([]commands.AllocationRequest, 0, len(req.Requests))
	for _, r := range req.Requests {
		lotID, idErr := kernel.UUIDFromString(r.LotID)
		if idErr != nil {
			return badRequest(ctx, "Invalid lot ID")
		}
		requests = append(requests, commands.AllocationRequest{LotID: lotID, Quantity: r.Quantity})
	}

	cmd, err := commands.NewAllocateGoodsCommand(stepID, requests)
	if err != nil {
		return badRequest(ctx, "Invalid allocation data: "+err.Error())
	}

	result, err := s.allocateGoodsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := AllocateGoodsResponse{
		Grants: make([]AllocationGrant, 0, len(result.Grants)),
		Skips:  make([]AllocationSkip, 0, len(result.Skips)),
	}
	for _, grant := range result.Grants {
		response.Grants = append(response.Grants, AllocationGrant{
			LotID:         grant.LotID.String(),
			TakenQuantity: grant.TakenQuantity,
		})
	}
	for _, skip := range result.Skips {
		response.Skips = append(response.Skips, AllocationSkip{
			LotID:  skip.LotID.String(),
			Reason: skip.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipmentBoard handles GET /api/v1/shipments/board.
func (s *Server) GetShipmentBoard(ctx echo.Context) error {
	query := queries.NewGetShipmentBoardQuery()

	board, err := s.getShipmentBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BoardRow, len(board))
	for i, row := range board {
		response[i] = BoardRow{
			ID:             row.ID.String(),
			WorkflowCode:   row.WorkflowCode,
			Overall:        row.Overall,
			Risk:           row.Risk,
			StepsTotal:     row.StepsTotal,
			StepsDone:      row.StepsDone,
			OpenExceptions: row.OpenExceptions,
			UpdatedAt:      row.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipmentSteps handles GET /api/v1/shipments/:shipmentId/steps.
func (s *Server) GetShipmentSteps(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment ID")
	}

	query, err := queries.NewGetShipmentStepsQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	result, err := s.getShipmentStepsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := ShipmentStepsView{
		Steps:       make([]StepView, len(result.Steps)),
		CurrentLane: result.CurrentLane,
	}
	for i, st := range result.Steps {
		view := StepView{
			ID:              st.ID.String(),
			SequenceIndex:   st.SequenceIndex,
			Name:            st.Name,
			OwnerRole:       st.OwnerRole,
			Status:          st.Status,
			DueAt:           st.DueAt,
			StartedAt:       st.StartedAt,
			CompletedAt:     st.CompletedAt,
			Fields:          st.Fields,
			Notes:           st.Notes,
			CustomerVisible: st.CustomerVisible,
			IsExternal:      st.IsExternal,
		}
		for _, stage := range st.Stages {
			view.Stages = append(view.Stages, StageView{Name: stage.Name, Status: stage.Status})
		}
		response.Steps[i] = view
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetLotBalances handles GET /api/v1/owners/:ownerUserId/lot-balances.
func (s *Server) GetLotBalances(ctx echo.Context) error {
	ownerUserID, err := kernel.UUIDFromString(ctx.Param("ownerUserId"))
	if err != nil {
		return badRequest(ctx, "Invalid owner user ID")
	}

	query, err := queries.NewGetLotBalancesQuery(ownerUserID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	balances, err := s.getLotBalancesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]LotBalance, len(balances))
	for i, b := range balances {
		response[i] = LotBalance{
			LotID:         b.LotID.String(),
			GoodID:        b.GoodID.String(),
			Quantity:      b.Quantity,
			TakenQuantity: b.TakenQuantity,
			Remaining:     b.Remaining,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetUserAlerts handles GET /api/v1/users/:userId/alerts.
func (s *Server) GetUserAlerts(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	query, err := queries.NewGetUserAlertsQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	alerts, err := s.getUserAlertsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]AlertView, len(alerts))
	for i, a := range alerts {
		response[i] = AlertView{
			ID:         a.ID.String(),
			ShipmentID: a.ShipmentID.String(),
			StepID:     a.StepID.String(),
			Kind:       a.Kind,
			DueAt:      a.DueAt,
			CreatedAt:  a.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain rejections onto HTTP status codes. Sequencing
// violations carry their stable reason code through unchanged.
func writeError(ctx echo.Context, err error) error {
	var violation *sequencing.ViolationError
	if errors.As(err, &violation) {
		return ctx.JSON(http.StatusUnprocessableEntity, SequenceViolation{
			Code:       http.StatusUnprocessableEntity,
			ReasonCode: violation.ReasonCode,
			StepName:   violation.StepName,
			RowIndex:   violation.RowIndex,
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrShipmentIsCancelled):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Shipment is cancelled",
		})
	case errors.Is(err, inventory.ErrInsufficientBalance):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Balance would go negative",
		})
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
