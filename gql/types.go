package gql

import (
	"github.com/graphql-go/graphql"

	"github.com/mbolis/quick-feedback/model"
)

// Field resolution falls back on graphql-go's default resolver, which matches
// camelCase field names against the Go struct fields case-insensitively.

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"isActive":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isSuperuser": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"accessToken":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"refreshToken": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"tokenType":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"expiresIn":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var optionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "QuestionOption",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"questionId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"text":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var questionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Question",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"surveyId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"text":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"isOpenEnded": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"order":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"options":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(optionType)))},
	},
})

var surveyType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Survey",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"isActive":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"shareToken":  &graphql.Field{Type: graphql.String},
		"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"questions":   &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(questionType)))},
	},
})

var responseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Response",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"submissionId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"surveyId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"questionId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"answer":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
	},
})

var answerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Answer",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"responseId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"questionId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"text":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var submissionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Submission",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"surveyId":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"submittedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		"answers":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(answerType)))},
	},
})

var optionCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OptionCount",
	Fields: graphql.Fields{
		"option": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"count":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var questionAnalyticsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "QuestionAnalytics",
	Fields: graphql.Fields{
		"questionId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"questionText": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"type":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		// set for open-ended questions
		"answers": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		// set for multiple-choice questions, in option order
		"options": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(optionCountType))},
	},
})

var surveyAnalyticsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SurveyAnalytics",
	Fields: graphql.Fields{
		"surveyId":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"analytics": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(questionAnalyticsType)))},
	},
})

var csvExportType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CsvExport",
	Fields: graphql.Fields{
		"filename": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"content": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return string(p.Source.(model.Export).Content), nil
			},
		},
	},
})

var optionInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OptionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"text": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

var questionInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "QuestionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"text":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"isOpenEnded": &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
		"options":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(optionInputType))},
	},
})

var surveyInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SurveyInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"questions":   &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(questionInputType))},
	},
})

var answerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "AnswerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"questionId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"answer":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})
