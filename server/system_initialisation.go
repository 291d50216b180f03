package server

import (
	"context"
	"fmt"

	"github.com/jrsteele09/staff-directory/contacts"
	"github.com/jrsteele09/staff-directory/internal/utils"
	"github.com/jrsteele09/staff-directory/users"
	"github.com/rs/zerolog/log"
)

// sampleContacts populate an empty directory on first start
var sampleContacts = []contacts.Fields{
	{Name: "John Smith", Role: "Manager", Department: "IT", Phone: utils.Ptr("555-0101"), Email: utils.Ptr("john.smith@company.com"), Status: contacts.StatusAvailable, Notes: utils.Ptr("IT department manager")},
	{Name: "Sarah Johnson", Role: "HR Director", Department: "Human Resources", Phone: utils.Ptr("555-0102"), Email: utils.Ptr("sarah.johnson@company.com"), Status: contacts.StatusBusy, Notes: utils.Ptr("Head of HR department")},
	{Name: "Mike Davis", Role: "Sales Lead", Department: "Sales", Phone: utils.Ptr("555-0103"), Email: utils.Ptr("mike.davis@company.com"), Status: contacts.StatusAvailable, Notes: utils.Ptr("Senior sales representative")},
	{Name: "Lisa Chen", Role: "Marketing Manager", Department: "Marketing", Phone: utils.Ptr("555-0104"), Email: utils.Ptr("lisa.chen@company.com"), Status: contacts.StatusOutOfOffice, Notes: utils.Ptr("Marketing team lead")},
	{Name: "David Wilson", Role: "Finance Director", Department: "Finance", Phone: utils.Ptr("555-0105"), Email: utils.Ptr("david.wilson@company.com"), Status: contacts.StatusAvailable, Notes: utils.Ptr("Chief financial officer")},
}

// InitialiseSystem creates the administrator account, seeds sample contacts into an empty
// directory and clears sessions that expired while the server was down.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	adminUser := s.config.GetSystemAdminUser()
	created, err := s.users.EnsureUser(ctx, adminUser, s.config.GetSystemAdminPassword(), users.RoleAdmin)
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to bootstrap administrator: %w", err)
	}
	if created {
		log.Info().Str("username", adminUser).Msg("administrator account created")
		log.Warn().Msg("change the administrator password after first login")
	}

	if s.config.GetSeedSampleContacts() {
		if err := s.seedSampleContacts(ctx); err != nil {
			return fmt.Errorf("[Server InitialiseSystem] failed to seed contacts: %w", err)
		}
	}

	purged, err := s.sessionManager.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] failed to purge sessions: %w", err)
	}
	if purged > 0 {
		log.Info().Int64("count", purged).Msg("expired sessions removed")
	}
	return nil
}

func (s *Server) seedSampleContacts(ctx context.Context) error {
	n, err := s.contacts.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, fields := range sampleContacts {
		if _, err := s.contacts.Create(ctx, fields); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(sampleContacts)).Msg("sample contacts created")
	return nil
}
