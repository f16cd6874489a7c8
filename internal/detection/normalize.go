package detection

import "fmt"

// Normalize turns one raw prediction into a FrameResult. Only boxes
// with confidence strictly above threshold are kept. A nil or malformed
// prediction becomes an error record for that frame.
func Normalize(raw *RawPrediction, frameIndex int, size FrameSize, threshold float64) FrameResult {
	if raw == nil {
		return errorResult(frameIndex, "Failed to parse predictions: missing prediction")
	}
	if raw.Err != "" {
		return errorResult(frameIndex, "Failed to parse predictions: "+raw.Err)
	}

	res := FrameResult{
		FrameIndex: frameIndex,
		Detections: []Detection{},
		FrameSize:  size,
	}

	for i, box := range raw.Boxes {
		if len(box.XYXY) != 4 || box.Conf == nil || box.Cls == nil {
			return errorResult(frameIndex, fmt.Sprintf("Failed to parse predictions: malformed box %d", i))
		}

		conf := *box.Conf
		if conf <= threshold {
			continue
		}

		res.Detected = true
		if conf > res.Confidence {
			res.Confidence = conf
		}
		res.Detections = append(res.Detections, Detection{
			BBox:       [4]float64{box.XYXY[0], box.XYXY[1], box.XYXY[2], box.XYXY[3]},
			Confidence: conf,
			ClassID:    *box.Cls,
			ClassName:  className(raw.Names, *box.Cls),
		})
	}

	return res
}

func className(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("class_%d", id)
}
