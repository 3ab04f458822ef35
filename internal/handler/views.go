package handler

import (
	"time"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/model"
)

// View types decouple the wire format from the repository models.
// Field names stay stable even when storage columns move.

type expoView struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Venue         string    `json:"venue"`
	OrganizerName string    `json:"organizer_name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toExpoView(e *model.Expo) expoView {
	return expoView{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		Venue:         e.Venue,
		OrganizerName: e.OrganizerName,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		CreatedAt:     e.CreatedAt,
	}
}

type boothView struct {
	ID                uint64  `json:"id"`
	ExpoID            uint64  `json:"expo_id"`
	BoothNumber       string  `json:"booth_number"`
	Floor             uint32  `json:"floor"`
	State             string  `json:"state"`
	AssignedCompanyID *uint64 `json:"assigned_company_id,omitempty"`
}

func toBoothView(b *model.Booth) boothView {
	return boothView{
		ID:                b.ID,
		ExpoID:            b.ExpoID,
		BoothNumber:       b.BoothNumber,
		Floor:             b.Floor,
		State:             string(b.State),
		AssignedCompanyID: b.AssignedCompanyID,
	}
}

type companyView struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Email       string    `json:"email"`
	Contact     string    `json:"contact"`
	Service     string    `json:"service"`
	DocumentRef string    `json:"document_ref"`
	CreatedAt   time.Time `json:"created_at"`
}

func toCompanyView(co *model.Company) companyView {
	return companyView{
		ID:          co.ID,
		Name:        co.Name,
		Description: co.Description,
		Address:     co.Address,
		Email:       co.Email,
		Contact:     co.Contact,
		Service:     co.Service,
		DocumentRef: co.DocumentRef,
		CreatedAt:   co.CreatedAt,
	}
}

type requestView struct {
	ID                 uint64    `json:"id"`
	BoothID            uint64    `json:"booth_id"`
	CompanyID          uint64    `json:"company_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description"`
	Status             string    `json:"status"`
	DecidedBy          *uint64   `json:"decided_by,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func toRequestView(r *model.Request) requestView {
	return requestView{
		ID:                 r.ID,
		BoothID:            r.BoothID,
		CompanyID:          r.CompanyID,
		ProductName:        r.ProductName,
		ProductDescription: r.ProductDescription,
		Status:             string(r.Status),
		DecidedBy:          r.DecidedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
