package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/entity"
)

func existingSettings(userID int64) *entity.NotificationSettings {
	return &entity.NotificationSettings{
		ID:               1,
		UserID:           userID,
		LeadDays:         []int{1, 3, 7},
		EmailEnabled:     true,
		EmailTemplate:    domain.DefaultEmailTemplate,
		NotificationTime: "08:00",
	}
}

func Test_settingsService_Get(t *testing.T) {
	type args struct {
		userID int64
	}
	tests := []struct {
		name      string
		args      args
		buildMock func(mocks allMocks, args args)
		want      func(t *testing.T, got *entity.NotificationSettings)
		wantErr   bool
	}{
		{
			name: "Should return existing settings untouched",
			args: args{userID: 1},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
			},
			want: func(t *testing.T, got *entity.NotificationSettings) {
				assert.Equal(t, existingSettings(1), got)
			},
		},
		{
			name: "Should create defaults on first access",
			args: args{userID: 1},
			buildMock: func(mocks allMocks, args args) {
				gomock.InOrder(
					mocks.mockSettingsRepo.EXPECT().
						GetByUser(args.userID).
						Return(nil, nil).Times(1),
					mocks.mockSettingsRepo.EXPECT().
						Create(gomock.Any()).
						DoAndReturn(func(s *entity.NotificationSettings) error {
							s.ID = 1
							return nil
						}).Times(1),
				)
			},
			want: func(t *testing.T, got *entity.NotificationSettings) {
				assert.Equal(t, int64(1), got.UserID)
				assert.Equal(t, []int{1, 3, 7}, got.LeadDays)
				assert.True(t, got.EmailEnabled)
				assert.Equal(t, "08:00", got.NotificationTime)
				assert.Equal(t, domain.DefaultEmailTemplate, got.EmailTemplate)
			},
		},
		{
			name: "Should return error when the read fails",
			args: args{userID: 1},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(nil, assert.AnError).Times(1)
			},
			wantErr: true,
		},
		{
			name: "Should return error when creating defaults fails",
			args: args{userID: 1},
			buildMock: func(mocks allMocks, args args) {
				gomock.InOrder(
					mocks.mockSettingsRepo.EXPECT().
						GetByUser(args.userID).
						Return(nil, nil).Times(1),
					mocks.mockSettingsRepo.EXPECT().
						Create(gomock.Any()).
						Return(assert.AnError).Times(1),
				)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			s := newSettings(m.mockDataManager, zerolog.Nop())

			if tt.buildMock != nil {
				tt.buildMock(m, tt.args)
			}

			got, err := s.Get(tt.args.userID)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}

func Test_settingsService_Update(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }
	strPtr := func(s string) *string { return &s }

	type args struct {
		userID int64
		input  UpdateSettingsInput
	}
	tests := []struct {
		name      string
		args      args
		buildMock func(mocks allMocks, args args)
		want      func(t *testing.T, got *entity.NotificationSettings)
		wantErr   error
	}{
		{
			name: "Should canonicalize lead days",
			args: args{userID: 1, input: UpdateSettingsInput{LeadDays: []int{3, 1, 7, 1}}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
				mocks.mockSettingsRepo.EXPECT().
					Update(gomock.Any()).
					Return(nil).Times(1)
			},
			want: func(t *testing.T, got *entity.NotificationSettings) {
				assert.Equal(t, []int{1, 3, 7}, got.LeadDays)
			},
		},
		{
			name: "Should fall back to one lead day for an empty list",
			args: args{userID: 1, input: UpdateSettingsInput{LeadDays: []int{}}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
				mocks.mockSettingsRepo.EXPECT().
					Update(gomock.Any()).
					Return(nil).Times(1)
			},
			want: func(t *testing.T, got *entity.NotificationSettings) {
				assert.Equal(t, []int{1}, got.LeadDays)
			},
		},
		{
			name: "Should reject a lead day over the maximum",
			args: args{userID: 1, input: UpdateSettingsInput{LeadDays: []int{1, 31}}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
			},
			wantErr: apperr.ErrInvalid,
		},
		{
			name: "Should reject a negative lead day",
			args: args{userID: 1, input: UpdateSettingsInput{LeadDays: []int{-1}}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
			},
			wantErr: apperr.ErrInvalid,
		},
		{
			name: "Should leave lead days untouched when nil",
			args: args{userID: 1, input: UpdateSettingsInput{EmailEnabled: boolPtr(false)}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
				mocks.mockSettingsRepo.EXPECT().
					Update(gomock.Any()).
					Return(nil).Times(1)
			},
			want: func(t *testing.T, got *entity.NotificationSettings) {
				assert.Equal(t, []int{1, 3, 7}, got.LeadDays)
				assert.False(t, got.EmailEnabled)
			},
		},
		{
			name: "Should apply template and time updates",
			args: args{userID: 1, input: UpdateSettingsInput{
				EmailTemplate:    strPtr("Hello {friendName}"),
				NotificationTime: strPtr("19:30"),
			}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
				mocks.mockSettingsRepo.EXPECT().
					Update(gomock.Any()).
					Return(nil).Times(1)
			},
			want: func(t *testing.T, got *entity.NotificationSettings) {
				assert.Equal(t, "Hello {friendName}", got.EmailTemplate)
				assert.Equal(t, "19:30", got.NotificationTime)
			},
		},
		{
			name: "Should surface a persistence error",
			args: args{userID: 1, input: UpdateSettingsInput{LeadDays: []int{1}}},
			buildMock: func(mocks allMocks, args args) {
				mocks.mockSettingsRepo.EXPECT().
					GetByUser(args.userID).
					Return(existingSettings(args.userID), nil).Times(1)
				mocks.mockSettingsRepo.EXPECT().
					Update(gomock.Any()).
					Return(assert.AnError).Times(1)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()

			s := newSettings(m.mockDataManager, zerolog.Nop())

			if tt.buildMock != nil {
				tt.buildMock(m, tt.args)
			}

			got, err := s.Update(tt.args.userID, tt.args.input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			tt.want(t, got)
		})
	}
}
