package source

import (
	"context"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/sam"
)

// GovernmentSource looks the company up in the SAM.gov entity registry.
type GovernmentSource struct {
	client sam.Client
}

// NewGovernmentSource wraps a SAM client as a Source.
func NewGovernmentSource(client sam.Client) *GovernmentSource {
	return &GovernmentSource{client: client}
}

func (s *GovernmentSource) Name() string { return "government" }

func (s *GovernmentSource) Fetch(ctx context.Context, company string, params Params) (Payload, error) {
	resp, err := s.client.SearchEntities(ctx, company)
	if err != nil {
		return nil, err
	}
	if resp.TotalRecords == 0 {
		// No registration is a real (if thin) answer, not a failure.
		return Payload{
			"status":        "success",
			"registrations": []any{},
			"total_records": 0,
		}, nil
	}

	includeRegulatory := params.Bool("include_regulatory", false)

	regs := make([]any, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		reg := map[string]any{
			"uei":                 e.EntityRegistration.UEISAM,
			"legal_name":          e.EntityRegistration.LegalBusinessName,
			"registration_status": e.EntityRegistration.RegistrationStatus,
			"registration_date":   e.EntityRegistration.RegistrationDate,
			"city":                e.CoreData.PhysicalAddress.City,
			"state":               e.CoreData.PhysicalAddress.StateOrProvince,
			"country":             e.CoreData.PhysicalAddress.CountryCode,
		}
		if includeRegulatory {
			reg["cage_code"] = e.EntityRegistration.CageCode
			reg["entity_structure"] = e.CoreData.GeneralInformation.EntityStructureDesc
			reg["state_of_incorporation"] = e.CoreData.GeneralInformation.StateOfIncorporation
		}
		regs = append(regs, reg)
	}

	return Payload{
		"status":        "success",
		"registrations": regs,
		"total_records": resp.TotalRecords,
	}, nil
}
