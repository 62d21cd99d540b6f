package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type GoPingPongStackProps struct {
	awscdk.StackProps
}

func NewGoPingPongStack(scope constructs.Construct, id string, props *GoPingPongStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	lambdaFn := awslambda.NewFunction(stack, jsii.String("GoPingPongApi"), &awslambda.FunctionProps{
		Runtime: awslambda.Runtime_GO_1_X(),
		Handler: jsii.String("main"),
		Code:    awslambda.Code_FromAsset(jsii.String("../"), nil),
		Environment: &map[string]*string{
			"APP":          jsii.String("prod"),
			"POSTGRES_DSN": jsii.String(os.Getenv("POSTGRES_DSN")),
			"REDIS_ADDR":   jsii.String(os.Getenv("REDIS_ADDR")),
		},
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("GoPingPongApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewGoPingPongStack(app, "GoPingPongStack", &GoPingPongStackProps{})
	app.Synth(nil)
}
