package mapping

import (
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/Ryan-Musomba/givehub/internal/models"
)

// ToModelDonation converts a domain Donation to a model Donation
func ToModelDonation(d domain.Donation) models.Donation {
	return models.Donation{
		DonationID:    d.DonationID,
		CampaignID:    d.CampaignID,
		CampaignName:  d.CampaignName,
		Amount:        d.Amount,
		Timestamp:     d.Timestamp,
		DonorID:       d.DonorID,
		DisplayName:   d.DisplayName,
		Anonymous:     d.Anonymous,
		PaymentMethod: string(d.PaymentMethod),
	}
}

// ToDomainDonation converts a model Donation to a domain Donation
func ToDomainDonation(m models.Donation) domain.Donation {
	return domain.Donation{
		DonationID:    m.DonationID,
		CampaignID:    m.CampaignID,
		CampaignName:  m.CampaignName,
		Amount:        m.Amount,
		Timestamp:     m.Timestamp,
		DonorID:       m.DonorID,
		DisplayName:   m.DisplayName,
		Anonymous:     m.Anonymous,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
	}
}

// ToDomainDonationSlice converts a slice of model Donations to domain Donations
func ToDomainDonationSlice(ms []models.Donation) []domain.Donation {
	ds := make([]domain.Donation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDonation(m)
	}
	return ds
}
