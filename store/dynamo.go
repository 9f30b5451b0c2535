package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/fretdex/model"
)

// Dynamo stores one item per job keyed by PK. The tab result is kept as a
// JSON string attribute.
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(client dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

// DialDynamo connects to endpoint, e.g. a DynamoDB Local at
// http://localhost:8000.
func DialDynamo(endpoint, region, table string) (*Dynamo, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}
	return NewDynamo(dynamodb.New(sess), table), nil
}

func (d *Dynamo) Put(ctx context.Context, job model.Job) error {
	item := map[string]*dynamodb.AttributeValue{
		"PK":        {S: aws.String(job.ID)},
		"Status":    {S: aws.String(job.Status)},
		"CreatedAt": {S: aws.String(job.CreatedAt.UTC().Format(time.RFC3339Nano))},
	}
	if job.Filename != "" {
		item["Filename"] = &dynamodb.AttributeValue{S: aws.String(job.Filename)}
	}
	if job.Error != "" {
		item["Error"] = &dynamodb.AttributeValue{S: aws.String(job.Error)}
	}
	if job.Result != nil {
		data, err := json.Marshal(job.Result)
		if err != nil {
			return fmt.Errorf("encoding tab for %s: %w", job.ID, err)
		}
		item["Result"] = &dynamodb.AttributeValue{S: aws.String(string(data))}
	}

	_, err := d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (d *Dynamo) Get(ctx context.Context, id string) (model.Job, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return model.Job{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return model.Job{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decodeJob(out.Item)
}

func str(item map[string]*dynamodb.AttributeValue, key string) string {
	if v, ok := item[key]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func decodeJob(item map[string]*dynamodb.AttributeValue) (model.Job, error) {
	job := model.Job{
		ID:       str(item, "PK"),
		Filename: str(item, "Filename"),
		Status:   str(item, "Status"),
		Error:    str(item, "Error"),
	}
	if created := str(item, "CreatedAt"); created != "" {
		t, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return job, fmt.Errorf("bad CreatedAt on %s: %w", job.ID, err)
		}
		job.CreatedAt = t
	}
	if data := str(item, "Result"); data != "" {
		var res model.Result
		if err := json.Unmarshal([]byte(data), &res); err != nil {
			return job, fmt.Errorf("decoding tab for %s: %w", job.ID, err)
		}
		job.Result = &res
	}
	return job, nil
}
