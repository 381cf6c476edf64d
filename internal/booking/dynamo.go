package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/clinicops/booking-api/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// DynamoStore persists bookings to a DynamoDB table keyed by fullName.
type DynamoStore struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoStore {
	if client == nil {
		panic("booking: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("booking: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DynamoStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Create inserts the booking with a conditional put so an existing record
// under the same full name is never overwritten. A failed condition is
// surfaced as ErrDuplicateBooking.
func (s *DynamoStore) Create(ctx context.Context, b *Booking) error {
	if b == nil {
		return errors.New("booking: record cannot be nil")
	}

	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("booking: failed to marshal record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(fullName)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("booking: failed to persist record: %w", err)
	}
	return nil
}

// Get fetches a booking by full name.
func (s *DynamoStore) Get(ctx context.Context, fullName string) (*Booking, error) {
	if fullName == "" {
		return nil, errors.New("booking: fullName required")
	}
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"fullName": &types.AttributeValueMemberS{Value: fullName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("booking: failed to fetch record: %w", err)
	}
	if out.Item == nil {
		return nil, ErrBookingNotFound
	}

	var b Booking
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, fmt.Errorf("booking: failed to decode record: %w", err)
	}
	return &b, nil
}
