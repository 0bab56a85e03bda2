//go:build lambda

package main

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

//go:embed data/island.json
var embeddedData string

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var (
	lambdaCatalog *Catalog
	lambdaConfig  Config
	lambdaLogger  *zap.Logger
)

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return respond(http.StatusBadRequest, errorResponse{"invalid base64 body"})
		}
		body = string(decoded)
	}
	status, resp := handleOptimize(ctx, lambdaCatalog, lambdaConfig, lambdaLogger, []byte(body))
	return respond(status, resp)
}

func respond(code int, v any) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(v)
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	var err error
	lambdaLogger, err = newLogger("info", false)
	if err != nil {
		panic(err)
	}
	lambdaConfig, err = LoadConfig("")
	if err != nil {
		lambdaLogger.Fatal("config", zap.Error(err))
	}
	lambdaCatalog, err = LoadCatalog(embeddedData)
	if err != nil {
		lambdaLogger.Fatal("catalog", zap.Error(err))
	}
	lambda.Start(handler)
}
