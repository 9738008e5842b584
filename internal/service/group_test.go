package service_test

import (
	"context"
	"testing"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ptrStr(s string) *string { return &s }

func TestGroupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerCreatesGroup", func(t *testing.T) {
		groups := new(MockGroupRepo)
		svc := service.NewGroupService(groups)

		groups.On("Create", mock.Anything, mock.MatchedBy(func(g *domain.Group) bool {
			return g.OwnerID == ownerActor.ID && g.Title == "Club A" &&
				g.TargetAmount != nil && g.TargetAmount.Equal(*ptrDec("10000"))
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Group).ID = 2
		}).Return(nil)

		group, err := svc.Create(ctx, ownerActor, service.GroupInput{
			Title:        ptrStr("Club A"),
			Type:         ptrStr("membership"),
			TargetAmount: ptrDec("10000"),
		})

		assert.NoError(t, err)
		assert.Equal(t, int32(2), group.ID)
		assert.Equal(t, ownerActor.ID, group.OwnerID)
		groups.AssertExpectations(t)
	})

	t.Run("AuditorDenied", func(t *testing.T) {
		svc := service.NewGroupService(new(MockGroupRepo))

		_, err := svc.Create(ctx, auditorActor, service.GroupInput{Title: ptrStr("Club A")})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		svc := service.NewGroupService(new(MockGroupRepo))

		_, err := svc.Create(ctx, ownerActor, service.GroupInput{})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, "group_title", verr.Field)
	})
}

func TestGroupService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerUpdatesOwnGroup", func(t *testing.T) {
		groups := new(MockGroupRepo)
		svc := service.NewGroupService(groups)

		groups.On("GetByID", mock.Anything, int32(2)).
			Return(&domain.Group{ID: 2, OwnerID: ownerActor.ID, Title: "Club A"}, nil)
		groups.On("Update", mock.Anything, mock.MatchedBy(func(g *domain.Group) bool {
			return g.Title == "Club A 2024"
		})).Return(nil)

		group, err := svc.Update(ctx, ownerActor, 2, service.GroupInput{Title: ptrStr("Club A 2024")})
		assert.NoError(t, err)
		assert.Equal(t, "Club A 2024", group.Title)
	})

	t.Run("OtherOwnerDenied", func(t *testing.T) {
		groups := new(MockGroupRepo)
		svc := service.NewGroupService(groups)

		groups.On("GetByID", mock.Anything, int32(2)).
			Return(&domain.Group{ID: 2, OwnerID: 9}, nil)

		_, err := svc.Update(ctx, ownerActor, 2, service.GroupInput{Title: ptrStr("Hijack")})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("AuditorDenied", func(t *testing.T) {
		groups := new(MockGroupRepo)
		svc := service.NewGroupService(groups)

		groups.On("GetByID", mock.Anything, int32(2)).
			Return(&domain.Group{ID: 2, OwnerID: ownerActor.ID}, nil)

		_, err := svc.Update(ctx, auditorActor, 2, service.GroupInput{Title: ptrStr("Nope")})
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})
}

func TestGroupService_List(t *testing.T) {
	groups := new(MockGroupRepo)
	svc := service.NewGroupService(groups)

	groups.On("List", mock.Anything).Return([]domain.Group{{ID: 1}, {ID: 2}}, nil)

	// Auditors get the full set so they can file submissions against any group.
	out, err := svc.List(context.Background(), auditorActor)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}
