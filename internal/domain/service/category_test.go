package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain/entity"
)

func Test_categoryService_Create(t *testing.T) {
	type args struct {
		userID int64
		name   string
		color  string
	}
	tests := []struct {
		name      string
		args      args
		buildMock func(mocks allMocks, args args)
		wantErr   error
	}{
		{
			name: "Should create a category",
			args: args{userID: 1, name: "Colleagues", color: "#10b981"},
			buildMock: func(mocks allMocks, args args) {
				gomock.InOrder(
					mocks.mockCategoryRepo.EXPECT().
						ExistsByUserAndName(args.userID, args.name).
						Return(false, nil).Times(1),
					mocks.mockCategoryRepo.EXPECT().
						Create(gomock.Any()).
						DoAndReturn(func(c *entity.Category) error {
							c.ID = 7
							return nil
						}).Times(1),
				)
			},
		},
		{
			name: "Should reject a duplicate name",
			args: args{userID: 1, name: "Friends", color: "#3b82f6"},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockCategoryRepo.EXPECT().
					ExistsByUserAndName(args.userID, args.name).
					Return(true, nil).Times(1)
			},
			wantErr: apperr.ErrConflict,
		},
		{
			name:    "Should reject an empty name",
			args:    args{userID: 1, name: "", color: "#10b981"},
			wantErr: apperr.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			s := newCategory(m.mockDataManager, zerolog.Nop())

			if tt.buildMock != nil {
				tt.buildMock(m, tt.args)
			}

			got, err := s.Create(tt.args.userID, tt.args.name, tt.args.color)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.args.name, got.Name)
			assert.Equal(t, tt.args.color, got.Color)
			assert.Equal(t, tt.args.userID, got.UserID)
		})
	}
}

func Test_categoryService_Update(t *testing.T) {
	existing := func() *entity.Category {
		return &entity.Category{ID: 7, UserID: 1, Name: "Friends", Color: "#3b82f6"}
	}

	t.Run("Should rename when the new name is free", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		gomock.InOrder(
			m.mockCategoryRepo.EXPECT().GetByIDAndUser(int64(7), int64(1)).Return(existing(), nil).Times(1),
			m.mockCategoryRepo.EXPECT().ExistsByUserAndName(int64(1), "Close Friends").Return(false, nil).Times(1),
			m.mockCategoryRepo.EXPECT().Update(gomock.Any()).Return(nil).Times(1),
		)

		got, err := newCategory(m.mockDataManager, zerolog.Nop()).Update(7, 1, "Close Friends", "")
		require.NoError(t, err)
		assert.Equal(t, "Close Friends", got.Name)
		assert.Equal(t, "#3b82f6", got.Color)
	})

	t.Run("Should not check uniqueness when the name is unchanged", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		gomock.InOrder(
			m.mockCategoryRepo.EXPECT().GetByIDAndUser(int64(7), int64(1)).Return(existing(), nil).Times(1),
			m.mockCategoryRepo.EXPECT().Update(gomock.Any()).Return(nil).Times(1),
		)

		got, err := newCategory(m.mockDataManager, zerolog.Nop()).Update(7, 1, "Friends", "#000000")
		require.NoError(t, err)
		assert.Equal(t, "#000000", got.Color)
	})

	t.Run("Should reject renaming to a taken name", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		gomock.InOrder(
			m.mockCategoryRepo.EXPECT().GetByIDAndUser(int64(7), int64(1)).Return(existing(), nil).Times(1),
			m.mockCategoryRepo.EXPECT().ExistsByUserAndName(int64(1), "Family").Return(true, nil).Times(1),
		)

		_, err := newCategory(m.mockDataManager, zerolog.Nop()).Update(7, 1, "Family", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})

	t.Run("Should return not found for another user's category", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockCategoryRepo.EXPECT().GetByIDAndUser(int64(7), int64(2)).Return(nil, nil).Times(1)

		_, err := newCategory(m.mockDataManager, zerolog.Nop()).Update(7, 2, "Anything", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func Test_categoryService_CreateDefaults(t *testing.T) {
	m, ctrl := newServiceTestMock(t)
	defer ctrl.Finish()

	var created []string
	m.mockCategoryRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(c *entity.Category) error {
			assert.Equal(t, int64(1), c.UserID)
			created = append(created, c.Name)
			return nil
		}).Times(4)

	err := newCategory(m.mockDataManager, zerolog.Nop()).CreateDefaults(m.mockDataManager, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Family", "Friends", "Work", "Other"}, created)
}
