package impl

import (
	"context"
	"testing"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	mockRepo "cookbook/internal/mocks/repository"
	mockSvc "cookbook/internal/mocks/service"
	"cookbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cookbookServiceFixture struct {
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	cookbookRepo *mockRepo.MockCookbookRepository
	qrService    *mockSvc.MockQRCodeService
	service      usecase.CookbookUsecase
}

func createTestCookbookService(t *testing.T) *cookbookServiceFixture {
	f := &cookbookServiceFixture{
		txManager:    mockRepo.NewMockTransactionManager(t),
		factory:      mockRepo.NewMockRepositoryFactory(t),
		cookbookRepo: mockRepo.NewMockCookbookRepository(t),
		qrService:    mockSvc.NewMockQRCodeService(t),
	}

	f.factory.EXPECT().NewCookbookRepository().Return(f.cookbookRepo).Maybe()

	f.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.factory)
		})

	f.service = NewCookbookService(CookbookServiceParams{
		Config:    newTestConfig(),
		TxManager: f.txManager,
		QRService: f.qrService,
		Logger:    newDiscardLogger(),
	})

	return f
}

func TestCookbookService_ShareQR_Success(t *testing.T) {
	ctx := context.Background()
	f := createTestCookbookService(t)
	userID := uuid.New()
	png := []byte{0x89, 0x50, 0x4e, 0x47}

	f.cookbookRepo.EXPECT().
		FindCookbookByUserID(ctx, userID).
		Return(&entity.Cookbook{UserID: userID, ShareSlug: "a1b2c3d4e5f6", Public: true}, nil)
	f.qrService.EXPECT().
		GenerateShareQR("https://app.cookbook.example.com/cookbooks/shared/a1b2c3d4e5f6").
		Return(png, nil)

	output, err := f.service.ShareQR(ctx, &usecase.ShareQRInput{UserID: userID})

	require.NoError(t, err)
	assert.Equal(t, png, output.PNG)
	assert.Equal(t, "https://app.cookbook.example.com/cookbooks/shared/a1b2c3d4e5f6", output.ShareURL)
}

func TestCookbookService_ShareQR_NotFound(t *testing.T) {
	ctx := context.Background()
	f := createTestCookbookService(t)
	userID := uuid.New()

	f.cookbookRepo.EXPECT().
		FindCookbookByUserID(ctx, userID).
		Return(nil, repository.ErrCookbookNotFound)

	output, err := f.service.ShareQR(ctx, &usecase.ShareQRInput{UserID: userID})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCookbookNotFound)
}

func TestCookbookService_ShareQR_PrivateCookbook(t *testing.T) {
	ctx := context.Background()
	f := createTestCookbookService(t)
	userID := uuid.New()

	f.cookbookRepo.EXPECT().
		FindCookbookByUserID(ctx, userID).
		Return(&entity.Cookbook{UserID: userID, ShareSlug: "a1b2c3d4e5f6", Public: false}, nil)

	output, err := f.service.ShareQR(ctx, &usecase.ShareQRInput{UserID: userID})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrCookbookNotPublic)
}
