package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id, Role: "seller"})
	rd := GetRequestData(ctx)
	if rd == nil || rd.UserID != id || rd.Role != "seller" {
		t.Fatalf("request data: unexpected %+v", rd)
	}
	if GetRequestData(context.Background()) != nil {
		t.Fatalf("expected nil request data on bare context")
	}
}

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t", RequestID: "r"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t" || td.RequestID != "r" {
		t.Fatalf("trace data: unexpected %+v", td)
	}
	if Default(nil) == nil {
		t.Fatalf("Default(nil) should not be nil")
	}
}
