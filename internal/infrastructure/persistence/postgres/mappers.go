package postgres

import (
	"github.com/MatiasOrellano/invitly-backend/internal/domain"
)

func toDomainPayment(m PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:             m.ID,
		UserID:         m.UserID,
		Amount:         m.Amount,
		Description:    m.Description,
		Type:           domain.PaymentType(m.Type),
		Status:         domain.PaymentStatus(m.Status),
		PreferenceID:   m.PreferenceID,
		PaymentDetails: m.PaymentDetails,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainGiftPayment(m GiftPaymentModel) *domain.GiftPayment {
	return &domain.GiftPayment{
		ID:             m.ID,
		GiftItemID:     m.GiftItemID,
		Amount:         m.Amount,
		Status:         domain.PaymentStatus(m.Status),
		PreferenceID:   m.PreferenceID,
		PayerEmail:     m.PayerEmail,
		PayerName:      m.PayerName,
		PaymentDetails: m.PaymentDetails,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainItem(m WishListItemModel) *domain.WishListItem {
	item := &domain.WishListItem{
		ID:     m.ID,
		UserID: m.UserID,
		Name:   m.Name,
		Price:  m.Price,
		Icon:   m.Icon,
		Paid:   m.Paid,
	}
	if m.PaymentStatus != nil {
		status := domain.ItemPaymentStatus(*m.PaymentStatus)
		item.PaymentStatus = &status
	}
	return item
}

func toDomainAttendee(m AttendeeModel) *domain.Attendee {
	return &domain.Attendee{
		ID:              m.ID,
		UserID:          m.UserID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Contact:         m.Contact,
		RSVPStatus:      domain.RSVPStatus(m.RSVPStatus),
		PlusOne:         m.PlusOne,
		PlusOneName:     m.PlusOneName,
		InvitationToken: m.InvitationToken,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toDomainPage(m LandingPageModel) *domain.LandingPage {
	return &domain.LandingPage{
		ID:         m.ID,
		UserID:     m.UserID,
		TemplateID: m.TemplateID,
		Slug:       m.Slug,
		Published:  m.Published,
		Content:    m.Content,
		UpdatedAt:  m.UpdatedAt,
	}
}
