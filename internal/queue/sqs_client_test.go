package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSendAPI struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSendAPI) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSQSClientSend(t *testing.T) {
	api := &fakeSendAPI{}
	client := NewSQSClientWithAPI(api, "https://sqs.example/queue")

	if err := client.Send(context.Background(), Message{AnalysisID: "a-1", Version: MessageVersion}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := aws.ToString(api.input.QueueUrl); got != "https://sqs.example/queue" {
		t.Fatalf("unexpected queue url %q", got)
	}
	decoded, err := DecodeMessage([]byte(aws.ToString(api.input.MessageBody)))
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if decoded.AnalysisID != "a-1" {
		t.Fatalf("unexpected analysis id %q", decoded.AnalysisID)
	}
}

func TestSQSClientSendError(t *testing.T) {
	client := NewSQSClientWithAPI(&fakeSendAPI{err: errors.New("throttled")}, "q")
	if err := client.Send(context.Background(), Message{AnalysisID: "a-1"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), "us-east-1", " "); err == nil {
		t.Fatal("expected error for empty queue url")
	}
}
