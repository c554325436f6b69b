package services

import (
	"context"

	"github.com/Ryan-Musomba/givehub/internal/core/domain"
	"github.com/Ryan-Musomba/givehub/internal/dto"
)

// DonationReaderSvc defines read operations for donation data
type DonationReaderSvc interface {
	// ListCampaignDonors retrieves one page of the donor list for a campaign.
	// Only the campaign creator may see it, and anonymous donors are masked.
	ListCampaignDonors(ctx context.Context, campaignID string, requestingUserID string, params dto.ListDonorsParams) ([]dto.CampaignDonorResponse, error)

	// ListDonationsByDonor retrieves the requesting user's own donation history.
	ListDonationsByDonor(ctx context.Context, donorUserID string, params dto.ListDonationsParams) (*dto.ListDonationsResponse, error)
}

// DonationWriterSvc defines write operations for donation data
type DonationWriterSvc interface {
	// CreateDonation validates and records a donation against a campaign,
	// atomically advancing the campaign's raised amount.
	CreateDonation(ctx context.Context, campaignID string, req dto.CreateDonationRequest, donorUserID string) (*domain.Donation, error)
}

// DonationSvcFacade combines all donation-related service interfaces
type DonationSvcFacade interface {
	DonationReaderSvc
	DonationWriterSvc
}
