package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"birthdayreminder/mocks"
)

type allMocks struct {
	mockDataManager  *mocks.MockDataManager
	mockUserRepo     *mocks.MockUserRepo
	mockBirthdayRepo *mocks.MockBirthdayRepo
	mockSettingsRepo *mocks.MockSettingsRepo
	mockCategoryRepo *mocks.MockCategoryRepo
	mockMailer       *mocks.MockMailer
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	userRepo := mocks.NewMockUserRepo(ctrl)
	dm.EXPECT().User().Return(userRepo).AnyTimes()

	birthdayRepo := mocks.NewMockBirthdayRepo(ctrl)
	dm.EXPECT().Birthday().Return(birthdayRepo).AnyTimes()

	settingsRepo := mocks.NewMockSettingsRepo(ctrl)
	dm.EXPECT().Settings().Return(settingsRepo).AnyTimes()

	categoryRepo := mocks.NewMockCategoryRepo(ctrl)
	dm.EXPECT().Category().Return(categoryRepo).AnyTimes()

	mailer := mocks.NewMockMailer(ctrl)

	m = allMocks{
		mockDataManager:  dm,
		mockUserRepo:     userRepo,
		mockBirthdayRepo: birthdayRepo,
		mockSettingsRepo: settingsRepo,
		mockCategoryRepo: categoryRepo,
		mockMailer:       mailer,
	}

	// validate scheduler creation
	sched := NewScheduler(dm, mailer, zerolog.Nop())
	require.NotNil(t, sched)

	return
}
