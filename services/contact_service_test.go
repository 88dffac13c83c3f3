package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/personal-site/config"
	"github.com/blogem/personal-site/mailer"
	mailmocks "github.com/blogem/personal-site/mailer/mocks"
	"github.com/blogem/personal-site/models"
	"github.com/blogem/personal-site/repositories/mocks"
)

// ContactServiceTestSuite is a test suite for the contact service
type ContactServiceTestSuite struct {
	suite.Suite
	service    ContactService
	mockRepo   *mocks.MockContactMessageRepository
	mockSender *mailmocks.MockSender
}

// SetupTest sets up the test suite before each test
func (suite *ContactServiceTestSuite) SetupTest() {
	suite.mockRepo = mocks.NewMockContactMessageRepository(suite.T())
	suite.mockSender = mailmocks.NewMockSender(suite.T())

	cfg := &config.Config{
		Mail: config.MailConfig{
			Username:   "site@example.com",
			SenderName: "Personal Website",
			Owner:      "owner@example.com",
		},
	}

	suite.service = NewContactService(suite.mockRepo, suite.mockSender, cfg, zerolog.Nop())
}

func validForm() *models.ContactForm {
	return &models.ContactForm{
		Name:    "Jane",
		Email:   "jane@example.com",
		Subject: "Hi",
		Message: "Hello",
	}
}

// TestSubmit_Success stores the message and sends the notification
func (suite *ContactServiceTestSuite) TestSubmit_Success() {
	var stored *models.ContactMessage
	suite.mockRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*models.ContactMessage")).
		Run(func(ctx context.Context, msg *models.ContactMessage) {
			msg.ID = 7
			stored = msg
		}).
		Return(nil)

	suite.mockSender.EXPECT().
		Send(mock.Anything, mailer.Message{
			FromName:    "Personal Website",
			FromAddress: "site@example.com",
			To:          []string{"owner@example.com"},
			Subject:     "New Contact Form Submission: Hi",
			Body:        "From: Jane <jane@example.com>\n\nHello",
		}).
		Return(nil)

	// Act
	result, err := suite.service.Submit(context.Background(), validForm())

	// Assert
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
	assert.NoError(suite.T(), result.NotifyErr)
	assert.Same(suite.T(), stored, result.Message)
	assert.Equal(suite.T(), int64(7), result.Message.ID)
	assert.Equal(suite.T(), "Jane", stored.Name)
	assert.Equal(suite.T(), "jane@example.com", stored.Email)
	assert.Equal(suite.T(), "Hi", stored.Subject)
	assert.Equal(suite.T(), "Hello", stored.Message)
}

// TestSubmit_StoresBeforeNotifying checks the write completes before the send starts
func (suite *ContactServiceTestSuite) TestSubmit_StoresBeforeNotifying() {
	var order []string
	suite.mockRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, msg *models.ContactMessage) { order = append(order, "store") }).
		Return(nil)
	suite.mockSender.EXPECT().Send(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, msg mailer.Message) { order = append(order, "send") }).
		Return(nil)

	_, err := suite.service.Submit(context.Background(), validForm())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"store", "send"}, order)
}

// TestSubmit_ValidationFailure neither stores nor sends
func (suite *ContactServiceTestSuite) TestSubmit_ValidationFailure() {
	form := validForm()
	form.Email = "not-an-email"

	result, err := suite.service.Submit(context.Background(), form)

	assert.Nil(suite.T(), result)
	var verrs models.ValidationErrors
	if assert.ErrorAs(suite.T(), err, &verrs) {
		assert.Len(suite.T(), verrs, 1)
		assert.Equal(suite.T(), models.CodeInvalidEmailFormat, verrs[0].Code)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	suite.mockSender.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything)
}

// TestSubmit_EmailFailureKeepsMessage reports the send error without failing
func (suite *ContactServiceTestSuite) TestSubmit_EmailFailureKeepsMessage() {
	sendErr := errors.New("535 authentication failed")
	suite.mockRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, msg *models.ContactMessage) { msg.ID = 1 }).
		Return(nil)
	suite.mockSender.EXPECT().Send(mock.Anything, mock.Anything).Return(sendErr)

	result, err := suite.service.Submit(context.Background(), validForm())

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result)
	assert.ErrorIs(suite.T(), result.NotifyErr, sendErr)
	assert.Equal(suite.T(), int64(1), result.Message.ID)
}

// TestSubmit_StoreFailure propagates and skips the notification
func (suite *ContactServiceTestSuite) TestSubmit_StoreFailure() {
	dbErr := errors.New("database is locked")
	suite.mockRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(dbErr)

	result, err := suite.service.Submit(context.Background(), validForm())

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, dbErr)
	var verrs models.ValidationErrors
	assert.False(suite.T(), errors.As(err, &verrs))
	suite.mockSender.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything)
}

// TestListMessages returns the repository order unchanged
func (suite *ContactServiceTestSuite) TestListMessages() {
	now := time.Now().UTC()
	rows := []models.ContactMessage{
		{ID: 2, Name: "B", Timestamp: now},
		{ID: 1, Name: "A", Timestamp: now.Add(-time.Hour)},
	}
	suite.mockRepo.EXPECT().GetAllNewestFirst(mock.Anything).Return(rows, nil)

	messages, err := suite.service.ListMessages(context.Background())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rows, messages)
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}
