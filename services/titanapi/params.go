package titanapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/titanbridge/lib/myerrors"
)

// Params is the flat parameter surface of one operation invocation.
// Which fields are consulted depends on the resource and operation.
type Params struct {
	// pagination controls for list operations
	ReturnAll bool `form:"returnAll" json:"returnAll,omitempty"`
	Limit     int  `form:"limit" json:"limit,omitempty"`

	CustomerID       string `form:"customerId" json:"customerId,omitempty"`
	LocationID       string `form:"locationId" json:"locationId,omitempty"`
	JobID            string `form:"jobId" json:"jobId,omitempty"`
	AppointmentID    string `form:"appointmentId" json:"appointmentId,omitempty"`
	TechnicianID     string `form:"technicianId" json:"technicianId,omitempty"`
	BookingID        string `form:"bookingId" json:"bookingId,omitempty"`
	LeadID           string `form:"leadId" json:"leadId,omitempty"`
	InvoiceID        string `form:"invoiceId" json:"invoiceId,omitempty"`
	ItemID           string `form:"itemId" json:"itemId,omitempty"`
	PaymentID        string `form:"paymentId" json:"paymentId,omitempty"`
	EstimateID       string `form:"estimateId" json:"estimateId,omitempty"`
	MembershipID     string `form:"membershipId" json:"membershipId,omitempty"`
	CampaignID       string `form:"campaignId" json:"campaignId,omitempty"`
	UserID           string `form:"userId" json:"userId,omitempty"`
	VendorID         string `form:"vendorId" json:"vendorId,omitempty"`
	WarehouseID      string `form:"warehouseId" json:"warehouseId,omitempty"`
	ReportID         string `form:"reportId" json:"reportId,omitempty"`
	JobTypeID        string `form:"jobTypeId" json:"jobTypeId,omitempty"`
	PaymentTypeID    string `form:"paymentTypeId" json:"paymentTypeId,omitempty"`
	MembershipTypeID string `form:"membershipTypeId" json:"membershipTypeId,omitempty"`
	DismissReasonID  string `form:"dismissReasonId" json:"dismissReasonId,omitempty"`
	CancelReasonID   string `form:"cancelReasonId" json:"cancelReasonId,omitempty"`

	Name         string `form:"name" json:"name,omitempty"`
	FirstName    string `form:"firstName" json:"firstName,omitempty"`
	LastName     string `form:"lastName" json:"lastName,omitempty"`
	Phone        string `form:"phone" json:"phone,omitempty"`
	Email        string `form:"email" json:"email,omitempty"`
	Street       string `form:"street" json:"street,omitempty"`
	City         string `form:"city" json:"city,omitempty"`
	State        string `form:"state" json:"state,omitempty"`
	Zip          string `form:"zip" json:"zip,omitempty"`
	ContactType  string `form:"contactType" json:"contactType,omitempty"`
	ContactValue string `form:"contactValue" json:"contactValue,omitempty"`
	NoteText     string `form:"noteText" json:"noteText,omitempty"`
	Memo         string `form:"memo" json:"memo,omitempty"`
	Reason       string `form:"reason" json:"reason,omitempty"`
	Summary      string `form:"summary" json:"summary,omitempty"`
	Status       string `form:"status" json:"status,omitempty"`
	Source       string `form:"source" json:"source,omitempty"`

	Start        string `form:"start" json:"start,omitempty"`
	End          string `form:"end" json:"end,omitempty"`
	StartDate    string `form:"startDate" json:"startDate,omitempty"`
	EndDate      string `form:"endDate" json:"endDate,omitempty"`
	Date         string `form:"date" json:"date,omitempty"`
	FollowUpDate string `form:"followUpDate" json:"followUpDate,omitempty"`

	Amount         float64 `form:"amount" json:"amount,omitempty"`
	Quantity       int     `form:"quantity" json:"quantity,omitempty"`
	AdjustmentType string  `form:"adjustmentType" json:"adjustmentType,omitempty"`
	SkuID          string  `form:"skuId" json:"skuId,omitempty"`

	Items []LineItem `form:"items" json:"items,omitempty"`

	Filters          map[string]string `form:"filters" json:"filters,omitempty"`
	AdditionalFields map[string]string `form:"additionalFields" json:"additionalFields,omitempty"`
	UpdateFields     map[string]string `form:"updateFields" json:"updateFields,omitempty"`
	Parameters       map[string]string `form:"parameters" json:"parameters,omitempty"`
}

// LineItem is one entry of a purchase-order item collection.
type LineItem struct {
	MaterialID string  `form:"materialId" json:"materialId,omitempty"`
	Quantity   int     `form:"quantity" json:"quantity,omitempty"`
	UnitCost   float64 `form:"unitCost" json:"unitCost,omitempty"`
}

func NewFromRequest(r *http.Request) (Params, error) {
	err := r.ParseForm()
	if err != nil {
		return Params{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (Params, error) {
	params := Params{}
	err := formcodec.NewDecoder().Decode(&params, values)
	if err != nil {
		return params, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}

	return params, nil
}

// ParseID converts a textual identifier into the integer form the API
// expects in request bodies.
func ParseID(id string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return parsed, nil
}

// FilterValues widens a string-valued filter map for query building.
func FilterValues(filters map[string]string) map[string]any {
	widened := map[string]any{}
	for key, value := range filters {
		widened[key] = value
	}
	return widened
}
