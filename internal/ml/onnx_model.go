package ml

import (
	"fmt"

	onnxruntime "github.com/yalue/onnxruntime_go"

	"news-impact-engine/internal/types"
)

// impactClasses is the class head of the trained model, in label order.
// Must match the label map the model was exported with.
var impactClasses = []types.Sentiment{
	types.StronglyPositive,
	types.ModeratelyPositive,
	types.SlightlyPositive,
	types.SlightlyNegative,
	types.ModeratelyNegative,
	types.StronglyNegative,
}

// ONNXModel wraps an ONNX Runtime session for impact classification.
type ONNXModel struct {
	session     *onnxruntime.DynamicAdvancedSession
	inputName   string
	outputNames []string
}

// LoadONNXModel loads an impact-classification model from file.
func LoadONNXModel(modelPath string) (*ONNXModel, error) {
	// Initialize ONNX runtime environment (idempotent after first call)
	if err := onnxruntime.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	options, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer options.Destroy()

	// Input: "input" (feature vector)
	// Outputs: "output" (predicted class index), "probabilities" (per class)
	session, err := onnxruntime.NewDynamicAdvancedSession(modelPath,
		[]string{"input"}, []string{"output", "probabilities"}, options)
	if err != nil {
		return nil, fmt.Errorf("failed to load ONNX model: %w", err)
	}

	return &ONNXModel{
		session:     session,
		inputName:   "input",
		outputNames: []string{"output", "probabilities"},
	}, nil
}

// Predict runs inference on a feature vector and returns the predicted
// label with the per-label probability map.
func (m *ONNXModel) Predict(features []float64) (types.Sentiment, map[types.Sentiment]float64, error) {
	if m.session == nil {
		return "", nil, fmt.Errorf("model session is nil")
	}

	inputShape := onnxruntime.NewShape(1, int64(len(features)))
	inputTensor, err := onnxruntime.NewTensor(inputShape, features)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	classOutput := make([]int64, 1)
	classShape := onnxruntime.NewShape(1)
	classTensor, err := onnxruntime.NewTensor(classShape, classOutput)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create class output tensor: %w", err)
	}
	defer classTensor.Destroy()

	numClasses := len(impactClasses)
	probabilitiesOutput := make([]float64, numClasses)
	probShape := onnxruntime.NewShape(1, int64(numClasses))
	probTensor, err := onnxruntime.NewTensor(probShape, probabilitiesOutput)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create probabilities output tensor: %w", err)
	}
	defer probTensor.Destroy()

	inputs := []onnxruntime.Value{inputTensor}
	outputs := []onnxruntime.Value{classTensor, probTensor}
	if err := m.session.Run(inputs, outputs); err != nil {
		return "", nil, fmt.Errorf("inference failed: %w", err)
	}

	predictedClass := int(classOutput[0])
	if predictedClass < 0 || predictedClass >= numClasses {
		return "", nil, fmt.Errorf("invalid class index: %d", predictedClass)
	}

	probMap := make(map[types.Sentiment]float64, numClasses)
	for i, prob := range probabilitiesOutput {
		probMap[impactClasses[i]] = prob
	}

	return impactClasses[predictedClass], probMap, nil
}

// Destroy cleans up the ONNX session.
func (m *ONNXModel) Destroy() {
	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
}
