// expr_validator.go: Expression-compiled field validators
//
// Bridges github.com/expr-lang/expr into the schema validation step so that
// constraints can be declared as strings ("value > 0 && value < 65536")
// instead of hand-written closures. Expressions are compiled once at schema
// construction time and reused for every resolution.
//
// Copyright (c) 2025 RiriFa
// SPDX-License-Identifier: MPL-2.0

package yacla

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/agilira/go-errors"
)

// ExprValidator compiles expression into a FieldValidator. The expression
// environment exposes two variables:
//
//	value  - the raw field value under validation
//	config - the partially populated destination struct
//
// The expression must evaluate to a boolean; false rejects the value.
func ExprValidator[T any](expression string) (FieldValidator[T], error) {
	if expression == "" {
		return nil, errors.New(ErrCodeValidationFailed, "validator expression must not be empty")
	}

	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeValidationFailed,
			"failed to compile validator expression").WithContext("expression", expression)
	}

	return exprFieldValidator[T](program, expression), nil
}

// MustExprValidator is ExprValidator that panics on compile failure, for use
// in package-level schema declarations where the expression is a constant.
func MustExprValidator[T any](expression string) FieldValidator[T] {
	validator, err := ExprValidator[T](expression)
	if err != nil {
		panic(fmt.Sprintf("yacla: invalid validator expression %q: %v", expression, err))
	}
	return validator
}

func exprFieldValidator[T any](program *exprvm.Program, expression string) FieldValidator[T] {
	return func(value any, config *T) error {
		env := map[string]any{
			"value":  value,
			"config": config,
		}
		result, err := exprlang.Run(program, env)
		if err != nil {
			return errors.Wrap(err, ErrCodeValidationFailed,
				"validator expression evaluation failed").WithContext("expression", expression)
		}
		ok, isBool := result.(bool)
		if !isBool {
			return errors.New(ErrCodeValidationFailed,
				"validator expression must return a boolean").WithContext("expression", expression)
		}
		if !ok {
			return errors.New(ErrCodeValidationFailed,
				"value rejected by validator expression").
				WithContext("expression", expression).
				WithContext("value", value)
		}
		return nil
	}
}
