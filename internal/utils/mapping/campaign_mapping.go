package mapping

import (
	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/Ryan-Musomba/givehub/internal/models"
)

// ToModelCampaign converts a domain Campaign to a model Campaign
func ToModelCampaign(d domain.Campaign) models.Campaign {
	return models.Campaign{
		CampaignID:      d.CampaignID,
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		Urgency:         string(d.Urgency),
		Location:        d.Location,
		ImageURL:        d.ImageURL,
		FundingGoal:     d.FundingGoal,
		AmountRaised:    d.AmountRaised,
		Deadline:        d.Deadline,
		Status:          string(d.Status),
		RejectionReason: d.RejectionReason,
		CreatorID:       d.CreatorID,
		CreatorName:     d.CreatorName,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCampaign converts a model Campaign to a domain Campaign
func ToDomainCampaign(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		CampaignID:      m.CampaignID,
		Name:            m.Name,
		Description:     m.Description,
		Category:        m.Category,
		Urgency:         domain.Urgency(m.Urgency),
		Location:        m.Location,
		ImageURL:        m.ImageURL,
		FundingGoal:     m.FundingGoal,
		AmountRaised:    m.AmountRaised,
		Deadline:        m.Deadline,
		Status:          domain.CampaignStatus(m.Status),
		RejectionReason: m.RejectionReason,
		CreatorID:       m.CreatorID,
		CreatorName:     m.CreatorName,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCampaignSlice converts a slice of model Campaigns to domain Campaigns
func ToDomainCampaignSlice(ms []models.Campaign) []domain.Campaign {
	ds := make([]domain.Campaign, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCampaign(m)
	}
	return ds
}
