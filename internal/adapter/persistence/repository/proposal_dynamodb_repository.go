package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"motofinance/internal/domain/entities"
	"motofinance/internal/domain/financing"
	"motofinance/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProposalsTableName = "proposals"
	defaultProductsTableName  = "official_products"
	proposalsStoreIDIndex     = "store_id-index"
	proposalsStatusIndex      = "status-index"
	productsProposalIDIndex   = "proposal_id-index"
)

type negotiationItem struct {
	ID        string `dynamodbav:"id"`
	Message   string `dynamodbav:"message"`
	Author    string `dynamodbav:"author"`
	Timestamp string `dynamodbav:"timestamp"`
}

type proposalItem struct {
	ID            string            `dynamodbav:"id"`
	StoreID       string            `dynamodbav:"store_id"`
	Brand         string            `dynamodbav:"brand"`
	Model         string            `dynamodbav:"model"`
	ProposedPrice string            `dynamodbav:"proposed_price"`
	Status        string            `dynamodbav:"status"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
	EvaluatedAt   string            `dynamodbav:"evaluated_at"`
	EvaluatorID   string            `dynamodbav:"evaluator_id"`
	Comments      string            `dynamodbav:"comments"`
	Negotiations  []negotiationItem `dynamodbav:"negotiations"`
	Calculations  string            `dynamodbav:"calculations"`
	Version       int64             `dynamodbav:"version"`
}

type officialProductItem struct {
	ID         string `dynamodbav:"id"`
	ProposalID string `dynamodbav:"proposal_id"`
	StoreID    string `dynamodbav:"store_id"`
	Brand      string `dynamodbav:"brand"`
	Model      string `dynamodbav:"model"`
	Price      string `dynamodbav:"price"`
	Financing  string `dynamodbav:"financing,omitempty"`
	ApprovedBy string `dynamodbav:"approved_by"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - proposals PK: id (string), GSIs store_id-index (PK: store_id) and status-index (PK: status)
//   - official_products PK: id (string), GSI proposal_id-index (PK: proposal_id)
//
// Every write after Create is conditional on the numeric version attribute.
type ProposalDynamoRepository struct {
	ddb           DynamoAPI
	tableName     string
	productsTable string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

// NewProposalDynamoRepository uses the given table names, falling back to
// PROPOSALS_TABLE / PRODUCTS_TABLE and then the defaults when empty.
func NewProposalDynamoRepository(ddb DynamoAPI, proposalsTable, productsTable string) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:           ddb,
		tableName:     tableName(proposalsTable, "PROPOSALS_TABLE", defaultProposalsTableName),
		productsTable: tableName(productsTable, "PRODUCTS_TABLE", defaultProductsTableName),
	}
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	it, err := toProposalItem(p)
	if err != nil {
		return entities.Proposal{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Proposal{}, err
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
		return entities.Proposal{}, conditionError(err)
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it)
}

func (r *ProposalDynamoRepository) ListByStoreID(ctx context.Context, storeID string) ([]entities.Proposal, error) {
	return r.query(ctx, proposalsStoreIDIndex, "store_id", storeID)
}

func (r *ProposalDynamoRepository) ListByStatus(ctx context.Context, status entities.ProposalStatus) ([]entities.Proposal, error) {
	return r.query(ctx, proposalsStatusIndex, "status", string(status))
}

func (r *ProposalDynamoRepository) Update(ctx context.Context, p entities.Proposal, expectedVersion int64) (entities.Proposal, error) {
	in, err := r.updateInput(p, expectedVersion)
	if err != nil {
		return entities.Proposal{}, err
	}
	in.ReturnValues = types.ReturnValueAllNew

	out, err := r.ddb.UpdateItem(ctx, in)
	if err != nil {
		return entities.Proposal{}, conditionError(err)
	}
	if len(out.Attributes) == 0 {
		return p, nil
	}
	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it)
}

// Approve writes the approved proposal and its official product in one
// transaction. The product put fails if one already exists with that id.
func (r *ProposalDynamoRepository) Approve(ctx context.Context, p entities.Proposal, product entities.OfficialProduct, expectedVersion int64) (entities.Proposal, error) {
	upd, err := r.updateInput(p, expectedVersion)
	if err != nil {
		return entities.Proposal{}, err
	}
	prodItem, err := toOfficialProductItem(product)
	if err != nil {
		return entities.Proposal{}, err
	}
	prodAV, err := attributevalue.MarshalMap(prodItem)
	if err != nil {
		return entities.Proposal{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:                 upd.TableName,
					Key:                       upd.Key,
					ConditionExpression:       upd.ConditionExpression,
					UpdateExpression:          upd.UpdateExpression,
					ExpressionAttributeNames:  upd.ExpressionAttributeNames,
					ExpressionAttributeValues: upd.ExpressionAttributeValues,
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.productsTable),
					Item:                prodAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		return entities.Proposal{}, conditionError(err)
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetOfficialProductByProposalID(ctx context.Context, proposalID string) (entities.OfficialProduct, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.productsTable),
		IndexName:              aws.String(productsProposalIDIndex),
		KeyConditionExpression: aws.String("proposal_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: proposalID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.OfficialProduct{}, err
	}
	if len(out.Items) == 0 {
		return entities.OfficialProduct{}, nil
	}

	var it officialProductItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.OfficialProduct{}, err
	}
	return fromOfficialProductItem(it)
}

func (r *ProposalDynamoRepository) query(ctx context.Context, index, key, value string) ([]entities.Proposal, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": key,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})

	items := []entities.Proposal{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it proposalItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			p, err := fromProposalItem(it)
			if err != nil {
				return nil, err
			}
			items = append(items, p)
		}
	}
	return items, nil
}

// updateInput rewrites every mutable attribute of p, guarded by the version
// the caller read.
func (r *ProposalDynamoRepository) updateInput(p entities.Proposal, expectedVersion int64) (*dynamodb.UpdateItemInput, error) {
	it, err := toProposalItem(p)
	if err != nil {
		return nil, err
	}
	negotiations, err := attributevalue.Marshal(it.Negotiations)
	if err != nil {
		return nil, err
	}

	expr := "SET #status = :status, #proposed_price = :proposed_price, #updated_at = :updated_at, " +
		"#evaluated_at = :evaluated_at, #evaluator_id = :evaluator_id, #comments = :comments, " +
		"#negotiations = :negotiations, #calculations = :calculations, #version = :version"
	values := map[string]types.AttributeValue{
		":status":         &types.AttributeValueMemberS{Value: it.Status},
		":proposed_price": &types.AttributeValueMemberS{Value: it.ProposedPrice},
		":updated_at":     &types.AttributeValueMemberS{Value: it.UpdatedAt},
		":evaluated_at":   &types.AttributeValueMemberS{Value: it.EvaluatedAt},
		":evaluator_id":   &types.AttributeValueMemberS{Value: it.EvaluatorID},
		":comments":       &types.AttributeValueMemberS{Value: it.Comments},
		":negotiations":   negotiations,
		":calculations":   &types.AttributeValueMemberS{Value: it.Calculations},
		":version":        &types.AttributeValueMemberN{Value: strconv.FormatInt(it.Version, 10)},
		":expected":       &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
	}
	names := map[string]string{
		"#status":         "status",
		"#proposed_price": "proposed_price",
		"#updated_at":     "updated_at",
		"#evaluated_at":   "evaluated_at",
		"#evaluator_id":   "evaluator_id",
		"#comments":       "comments",
		"#negotiations":   "negotiations",
		"#calculations":   "calculations",
		"#version":        "version",
	}

	return &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: p.ID},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #version = :expected"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
	}, nil
}

func toProposalItem(p entities.Proposal) (proposalItem, error) {
	calc, err := marshalCalculation(p.Calculations)
	if err != nil {
		return proposalItem{}, err
	}
	negotiations := make([]negotiationItem, 0, len(p.Negotiations))
	for _, n := range p.Negotiations {
		negotiations = append(negotiations, negotiationItem{
			ID:        n.ID,
			Message:   n.Message,
			Author:    string(n.Author),
			Timestamp: formatTime(n.Timestamp),
		})
	}
	var evaluatedAt string
	if p.EvaluatedAt != nil {
		evaluatedAt = formatTime(*p.EvaluatedAt)
	}
	return proposalItem{
		ID:            p.ID,
		StoreID:       p.StoreID,
		Brand:         p.Brand,
		Model:         p.Model,
		ProposedPrice: floatToString(p.ProposedPrice),
		Status:        string(p.Status),
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
		EvaluatedAt:   evaluatedAt,
		EvaluatorID:   p.EvaluatorID,
		Comments:      p.Comments,
		Negotiations:  negotiations,
		Calculations:  calc,
		Version:       p.Version,
	}, nil
}

func fromProposalItem(it proposalItem) (entities.Proposal, error) {
	calc, err := unmarshalCalculation(it.Calculations)
	if err != nil {
		return entities.Proposal{}, err
	}
	price, _ := strconv.ParseFloat(it.ProposedPrice, 64)
	negotiations := make([]entities.NegotiationMessage, 0, len(it.Negotiations))
	for _, n := range it.Negotiations {
		negotiations = append(negotiations, entities.NegotiationMessage{
			ID:        n.ID,
			Message:   n.Message,
			Author:    entities.NegotiationAuthor(n.Author),
			Timestamp: parseTime(n.Timestamp),
		})
	}
	var evaluatedAt *time.Time
	if it.EvaluatedAt != "" {
		t := parseTime(it.EvaluatedAt)
		evaluatedAt = &t
	}
	return entities.Proposal{
		ID:            it.ID,
		StoreID:       it.StoreID,
		Brand:         it.Brand,
		Model:         it.Model,
		ProposedPrice: price,
		Status:        entities.ProposalStatus(it.Status),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
		EvaluatedAt:   evaluatedAt,
		EvaluatorID:   it.EvaluatorID,
		Comments:      it.Comments,
		Negotiations:  negotiations,
		Calculations:  calc,
		Version:       it.Version,
	}, nil
}

func toOfficialProductItem(p entities.OfficialProduct) (officialProductItem, error) {
	calc, err := marshalCalculation(p.Financing)
	if err != nil {
		return officialProductItem{}, err
	}
	return officialProductItem{
		ID:         p.ID,
		ProposalID: p.ProposalID,
		StoreID:    p.StoreID,
		Brand:      p.Brand,
		Model:      p.Model,
		Price:      floatToString(p.Price),
		Financing:  calc,
		ApprovedBy: p.ApprovedBy,
		CreatedAt:  formatTime(p.CreatedAt),
	}, nil
}

func fromOfficialProductItem(it officialProductItem) (entities.OfficialProduct, error) {
	calc, err := unmarshalCalculation(it.Financing)
	if err != nil {
		return entities.OfficialProduct{}, err
	}
	price, _ := strconv.ParseFloat(it.Price, 64)
	return entities.OfficialProduct{
		ID:         it.ID,
		ProposalID: it.ProposalID,
		StoreID:    it.StoreID,
		Brand:      it.Brand,
		Model:      it.Model,
		Price:      price,
		Financing:  calc,
		ApprovedBy: it.ApprovedBy,
		CreatedAt:  parseTime(it.CreatedAt),
	}, nil
}

// Calculations are stored as a JSON string attribute.
func marshalCalculation(c *financing.Calculation) (string, error) {
	if c == nil {
		return "", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalCalculation(s string) (*financing.Calculation, error) {
	if s == "" {
		return nil, nil
	}
	var c financing.Calculation
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, err
	}
	return &c, nil
}
