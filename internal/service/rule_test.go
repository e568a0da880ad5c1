package service

import (
	"testing"
	"time"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RuleServiceSuite struct {
	testutil.BaseServiceTestSuite
	service RuleService
}

func TestRuleService(t *testing.T) {
	suite.Run(t, new(RuleServiceSuite))
}

func (s *RuleServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewRuleService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *RuleServiceSuite) TestCreateRuleDefaults() {
	resp, err := s.service.CreateRule(s.GetContext(), &dto.CreateRuleRequest{
		Name:          "App login",
		Category:      "digital",
		ServiceType:   "app_login",
		PointsPerUnit: 5,
		Unit:          types.RuleUnitAction,
	})
	s.Require().NoError(err)
	s.True(resp.IsActive)
	s.True(resp.UnitValue.Equal(decimal.NewFromInt(1)))
	s.True(resp.Multiplier.Equal(decimal.NewFromInt(1)))
}

func (s *RuleServiceSuite) TestCreateRuleValidation() {
	_, err := s.service.CreateRule(s.GetContext(), &dto.CreateRuleRequest{
		Name:          "Transfers",
		Category:      "banking",
		ServiceType:   "transfer",
		PointsPerUnit: 1,
		Unit:          types.RuleUnitAmount,
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateRule(s.GetContext(), &dto.CreateRuleRequest{
		Name:        "Bad unit",
		Category:    "banking",
		ServiceType: "transfer",
		Unit:        "percent",
	})
	s.True(ierr.IsValidation(err))
}

func (s *RuleServiceSuite) TestFindRule() {
	s.CreateAmountRule("banking", "transfer", 1, "100", nil)
	login := s.CreateActionRule("digital", "app_login", 5, nil)

	found, err := s.service.FindRule(s.GetContext(), "digital", "app_login")
	s.Require().NoError(err)
	s.Equal(login.ID, found.ID)

	_, err = s.service.FindRule(s.GetContext(), "digital", "card_tap")
	s.True(ierr.IsRuleNotFound(err))

	_, err = s.service.FindRule(s.GetContext(), "", "app_login")
	s.True(ierr.IsValidation(err))
}

func (s *RuleServiceSuite) TestFindRulePrefersOldest() {
	older := testutil.NewRule("cards", "purchase", types.RuleUnitAmount, 1, "100", nil)
	older.CreatedAt = s.GetNow().Add(-time.Hour)
	newer := testutil.NewRule("cards", "purchase", types.RuleUnitAmount, 9, "100", nil)
	newer.CreatedAt = s.GetNow()
	s.Require().NoError(s.GetStores().RuleRepo.Create(s.GetContext(), newer))
	s.Require().NoError(s.GetStores().RuleRepo.Create(s.GetContext(), older))

	found, err := s.service.FindRule(s.GetContext(), "cards", "purchase")
	s.Require().NoError(err)
	s.Equal(older.ID, found.ID)
}

func (s *RuleServiceSuite) TestInactiveRulesAreSkipped() {
	r := s.CreateActionRule("digital", "app_login", 5, nil)

	_, err := s.service.FindRule(s.GetContext(), "digital", "app_login")
	s.Require().NoError(err)

	_, err = s.service.UpdateRule(s.GetContext(), r.ID, &dto.UpdateRuleRequest{IsActive: lo.ToPtr(false)})
	s.Require().NoError(err)

	_, err = s.service.FindRule(s.GetContext(), "digital", "app_login")
	s.True(ierr.IsRuleNotFound(err))
}

func (s *RuleServiceSuite) TestRejectsSecondActiveRule() {
	existing := s.CreateActionRule("digital", "app_login", 5, nil)

	req := &dto.CreateRuleRequest{
		Name:          "Login bonus",
		Category:      "digital",
		ServiceType:   "app_login",
		PointsPerUnit: 10,
		Unit:          types.RuleUnitAction,
	}
	_, err := s.service.CreateRule(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))

	// an inactive copy is fine and can only be activated after the old one
	req.IsActive = lo.ToPtr(false)
	draft, err := s.service.CreateRule(s.GetContext(), req)
	s.Require().NoError(err)

	_, err = s.service.UpdateRule(s.GetContext(), draft.ID, &dto.UpdateRuleRequest{IsActive: lo.ToPtr(true)})
	s.True(ierr.IsValidation(err))

	_, err = s.service.UpdateRule(s.GetContext(), existing.ID, &dto.UpdateRuleRequest{IsActive: lo.ToPtr(false)})
	s.Require().NoError(err)
	_, err = s.service.UpdateRule(s.GetContext(), draft.ID, &dto.UpdateRuleRequest{IsActive: lo.ToPtr(true)})
	s.Require().NoError(err)

	found, err := s.service.FindRule(s.GetContext(), "digital", "app_login")
	s.Require().NoError(err)
	s.Equal(draft.ID, found.ID)
}

func (s *RuleServiceSuite) TestListAndDelete() {
	a := s.CreateActionRule("digital", "app_login", 5, nil)
	s.CreateAmountRule("banking", "transfer", 1, "100", nil)

	list, err := s.service.ListRules(s.GetContext(), &types.RuleFilter{Category: "digital"})
	s.Require().NoError(err)
	s.Len(list.Rules, 1)

	s.Require().NoError(s.service.DeleteRule(s.GetContext(), a.ID))
	_, err = s.service.GetRule(s.GetContext(), a.ID)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.FindRule(s.GetContext(), "digital", "app_login")
	s.True(ierr.IsRuleNotFound(err))
}
