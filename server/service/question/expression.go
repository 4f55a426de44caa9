package question

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// celEnv exposes the question format as question_type since type is a CEL builtin.
var celEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("question", cel.StringType),
		cel.Variable("answer", cel.StringType),
		cel.Variable("category", cel.StringType),
		cel.Variable("category_id", cel.StringType),
		cel.Variable("difficulty", cel.StringType),
		cel.Variable("question_type", cel.StringType),
		cel.Variable("exam_type", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
		cel.Variable("is_favorite", cel.BoolType),
		cel.Variable("study_count", cel.IntType),
	)
})

// compileExpression compiles a boolean CEL predicate over question fields, e.g.
//
//	difficulty == "Difícil" && "cálculo" in tags
func compileExpression(expr string) (cel.Program, error) {
	env, err := celEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression must evaluate to bool, got %v", ErrInvalidExpression, ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return prg, nil
}

func evalExpression(prg cel.Program, q *Question, favorite bool) (bool, error) {
	out, _, err := prg.Eval(map[string]any{
		"id":            q.ID,
		"question":      q.Question,
		"answer":        q.Answer,
		"category":      q.Category,
		"category_id":   q.CategoryID,
		"difficulty":    string(q.Difficulty),
		"question_type": q.Type,
		"exam_type":     string(q.ExamType),
		"tags":          q.Tags,
		"is_favorite":   favorite,
		"study_count":   int64(q.StudyCount),
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate expression on question %s: %w", q.ID, err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: non-bool result for question %s", ErrInvalidExpression, q.ID)
	}
	return matched, nil
}
