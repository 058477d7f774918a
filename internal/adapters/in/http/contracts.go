package http

import (
	"time"

	"shiptrack/internal/core/domain/model/fieldtree"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SequenceViolation carries the stable rejection code for a step edit that
// entered data ahead of its predecessor. The UI translates the code; this
// service never renders human text for it.
type SequenceViolation struct {
	Code       int    `json:"code"`
	ReasonCode string `json:"reasonCode"`
	StepName   string `json:"stepName"`
	RowIndex   int    `json:"rowIndex"`
}

// CreateShipmentRequest opens a shipment on a workflow variant.
type CreateShipmentRequest struct {
	WorkflowCode     string   `json:"workflowCode"`
	OwnerUserID      string   `json:"ownerUserId"`
	CustomerPartyIDs []string `json:"customerPartyIds"`
}

// CreateShipmentResponse returns the generated shipment ID.
type CreateShipmentResponse struct {
	ID string `json:"id"`
}

// UpdateStepRequest patches a step's fields, removes paths, and optionally
// overrides status or notes. Absent members leave their target untouched.
type UpdateStepRequest struct {
	Fields      fieldtree.Tree `json:"fields,omitempty"`
	RemovePaths [][]string     `json:"removePaths,omitempty"`
	Status      *string        `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// RaiseExceptionRequest flags a shipment with a typed exception.
type RaiseExceptionRequest struct {
	ExceptionTypeID string `json:"exceptionTypeId"`
	DefaultRisk     string `json:"defaultRisk"`
}

// RaiseExceptionResponse returns the generated exception ID.
type RaiseExceptionResponse struct {
	ID string `json:"id"`
}

// ReceiveLotRequest records goods received on a shipment.
type ReceiveLotRequest struct {
	GoodID                string  `json:"goodId"`
	OwnerUserID           string  `json:"ownerUserId"`
	CustomerPartyID       *string `json:"customerPartyId,omitempty"`
	AppliesToAllCustomers bool    `json:"appliesToAllCustomers"`
	Quantity              int     `json:"quantity"`
}

// ReceiveLotResponse returns the generated lot ID.
type ReceiveLotResponse struct {
	ID string `json:"id"`
}

// LinkShipmentsRequest pools goods between the path shipment and another.
type LinkShipmentsRequest struct {
	OtherShipmentID string `json:"otherShipmentId"`
}

// AllocateGoodsRequest asks to take quantities from lots for one step.
type AllocateGoodsRequest struct {
	Requests []LotAllocationRequest `json:"requests"`
}

// LotAllocationRequest is one per-lot ask within an allocation batch.
type LotAllocationRequest struct {
	LotID    string `json:"lotId"`
	Quantity int    `json:"quantity"`
}

// AllocateGoodsResponse reports the per-lot outcome of the batch.
type AllocateGoodsResponse struct {
	Grants []AllocationGrant `json:"grants"`
	Skips  []AllocationSkip  `json:"skips"`
}

// AllocationGrant is one granted lot with the quantity actually taken.
type AllocationGrant struct {
	LotID         string `json:"lotId"`
	TakenQuantity int    `json:"takenQuantity"`
}

// AllocationSkip is one skipped lot with its machine-readable reason.
type AllocationSkip struct {
	LotID  string `json:"lotId"`
	Reason string `json:"reason"`
}

// BoardRow is one shipment on the tracking board.
type BoardRow struct {
	ID             string    `json:"id"`
	WorkflowCode   string    `json:"workflowCode"`
	Overall        string    `json:"overall"`
	Risk           string    `json:"risk"`
	StepsTotal     int       `json:"stepsTotal"`
	StepsDone      int       `json:"stepsDone"`
	OpenExceptions int       `json:"openExceptions"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ShipmentStepsView is a shipment's ordered steps plus, for checkpoint-chain
// workflows, the lane the UI should highlight as active.
type ShipmentStepsView struct {
	Steps       []StepView `json:"steps"`
	CurrentLane *string    `json:"currentLane,omitempty"`
}

// StepView is one workflow step of a shipment.
type StepView struct {
	ID              string         `json:"id"`
	SequenceIndex   int            `json:"sequenceIndex"`
	Name            string         `json:"name"`
	OwnerRole       string         `json:"ownerRole"`
	Status          string         `json:"status"`
	DueAt           *time.Time     `json:"dueAt,omitempty"`
	StartedAt       *time.Time     `json:"startedAt,omitempty"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	Fields          fieldtree.Tree `json:"fields"`
	Notes           string         `json:"notes,omitempty"`
	CustomerVisible bool           `json:"customerVisible"`
	IsExternal      bool           `json:"isExternal"`
	Stages          []StageView    `json:"stages,omitempty"`
}

// StageView is one checkpoint stage of a region step.
type StageView struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// LotBalance is one lot with its consumption so far.
type LotBalance struct {
	LotID         string `json:"lotId"`
	GoodID        string `json:"goodId"`
	Quantity      int    `json:"quantity"`
	TakenQuantity int    `json:"takenQuantity"`
	Remaining     int    `json:"remaining"`
}

// AlertView is one deadline alert for the polling recipient.
type AlertView struct {
	ID         string    `json:"id"`
	ShipmentID string    `json:"shipmentId"`
	StepID     string    `json:"stepId"`
	Kind       string    `json:"kind"`
	DueAt      time.Time `json:"dueAt"`
	CreatedAt  time.Time `json:"createdAt"`
}
