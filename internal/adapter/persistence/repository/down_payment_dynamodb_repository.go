package repository

import (
	"context"
	"strconv"

	"motofinance/internal/domain/entities"
	"motofinance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultDownPaymentsTableName = "down_payments"
	downPaymentsProposalIDIndex  = "proposal_id-index"
)

type downPaymentItem struct {
	ID           string                 `dynamodbav:"id"`
	ProposalID   string                 `dynamodbav:"proposal_id"`
	Percentage   int                    `dynamodbav:"percentage"`
	Amount       string                 `dynamodbav:"amount"`
	Date         string                 `dynamodbav:"date"`
	Status       string                 `dynamodbav:"status"`
	MPPayload    map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// DownPaymentDynamoRepository persists DownPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: proposal_id-index (PK: proposal_id)

type DownPaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IDownPaymentRepository = (*DownPaymentDynamoRepository)(nil)

func NewDownPaymentDynamoRepository(ddb DynamoAPI, table string) *DownPaymentDynamoRepository {
	return &DownPaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableName(table, "DOWN_PAYMENTS_TABLE", defaultDownPaymentsTableName),
	}
}

func (r *DownPaymentDynamoRepository) Create(ctx context.Context, p entities.DownPayment) (entities.DownPayment, error) {
	it := toDownPaymentItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.DownPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.DownPayment{}, conditionError(err)
	}
	return p, nil
}

func (r *DownPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.DownPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.DownPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.DownPayment{}, nil
	}

	var it downPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.DownPayment{}, err
	}
	return fromDownPaymentItem(it), nil
}

func (r *DownPaymentDynamoRepository) ListByProposalID(ctx context.Context, proposalID string) ([]entities.DownPayment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(downPaymentsProposalIDIndex),
		KeyConditionExpression: aws.String("proposal_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.DownPayment, 0, len(out.Items))
	for _, raw := range out.Items {
		var it downPaymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromDownPaymentItem(it))
	}
	return items, nil
}

func toDownPaymentItem(p entities.DownPayment) downPaymentItem {
	return downPaymentItem{
		ID:           p.ID,
		ProposalID:   p.ProposalID,
		Percentage:   p.Percentage,
		Amount:       floatToString(p.Amount),
		Date:         formatTime(p.Date),
		Status:       string(p.Status),
		MPPayload:    p.MPPayload,
		MPPayloadRaw: string(p.MPPayloadRaw),
	}
}

func fromDownPaymentItem(it downPaymentItem) entities.DownPayment {
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	return entities.DownPayment{
		ID:           it.ID,
		ProposalID:   it.ProposalID,
		Percentage:   it.Percentage,
		Amount:       amount,
		Date:         parseTime(it.Date),
		Status:       entities.PaymentStatus(it.Status),
		MPPayload:    it.MPPayload,
		MPPayloadRaw: []byte(it.MPPayloadRaw),
	}
}
