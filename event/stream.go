package event

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrUnknownEventType 事件记录的type字段不属于九类事件之一
var ErrUnknownEventType = errors.New("unknown event type")

// Stream 有序事件流
// 功能：按时间非递减的顺序逐个产出事件
// 说明：流结束时Next返回(nil, io.EOF)，其余错误表示输入损坏
type Stream interface {
	Next() (Event, error)
}

// SliceStream 基于切片的事件流，测试与内存回放使用
type SliceStream struct {
	events []Event
	pos    int
}

func NewSliceStream(events ...Event) *SliceStream {
	return &SliceStream{events: events}
}

func (s *SliceStream) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return nil, io.EOF
	}
	e := s.events[s.pos]
	s.pos++
	return e, nil
}

// Record 事件的扁平化记录
// 功能：JSONL文件与MongoDB文档共用的事件表示，字段名沿用MATSim事件文件的属性名
type Record struct {
	Time        float64 `json:"time" bson:"time"`
	Type        string  `json:"type" bson:"type"`
	Person      string  `json:"person,omitempty" bson:"person,omitempty"`
	Driver      string  `json:"driver,omitempty" bson:"driver,omitempty"` // vehicle enters/leaves traffic中驾驶人的另一种写法
	Vehicle     string  `json:"vehicle,omitempty" bson:"vehicle,omitempty"`
	Link        string  `json:"link,omitempty" bson:"link,omitempty"`
	ActType     string  `json:"actType,omitempty" bson:"actType,omitempty"`
	LegMode     string  `json:"legMode,omitempty" bson:"legMode,omitempty"`
	NetworkMode string  `json:"networkMode,omitempty" bson:"networkMode,omitempty"`
}

// IsKnown 记录是否属于回放引擎处理的九类事件
func (r Record) IsKnown() bool {
	_, ok := kindByName[r.Type]
	return ok
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// ToEvent 将记录转换为强类型事件
func (r Record) ToEvent() (Event, error) {
	kind, ok := kindByName[r.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, r.Type)
	}
	person := r.Person
	if person == "" {
		person = r.Driver
	}
	switch kind {
	case KindVehicleEntersTraffic:
		return VehicleEntersTraffic{T: r.Time, PersonID: person, VehicleID: r.Vehicle, LinkID: r.Link}, nil
	case KindVehicleLeavesTraffic:
		return VehicleLeavesTraffic{T: r.Time, PersonID: person, VehicleID: r.Vehicle, LinkID: r.Link}, nil
	case KindLinkEnter:
		return LinkEnter{T: r.Time, VehicleID: r.Vehicle, LinkID: r.Link}, nil
	case KindLinkLeave:
		return LinkLeave{T: r.Time, VehicleID: r.Vehicle, LinkID: r.Link}, nil
	case KindPersonEntersVehicle:
		return PersonEntersVehicle{T: r.Time, PersonID: person, VehicleID: r.Vehicle}, nil
	case KindPersonLeavesVehicle:
		return PersonLeavesVehicle{T: r.Time, PersonID: person, VehicleID: r.Vehicle}, nil
	case KindPersonDeparture:
		return PersonDeparture{T: r.Time, PersonID: person, LegMode: r.LegMode, LinkID: r.Link}, nil
	case KindActivityStart:
		return ActivityStart{T: r.Time, PersonID: person, ActType: r.ActType, LinkID: r.Link}, nil
	case KindActivityEnd:
		return ActivityEnd{T: r.Time, PersonID: person, ActType: r.ActType, LinkID: r.Link}, nil
	}
	panic("impossible")
}

// JSONLStream 逐行读取JSON事件记录的事件流
// 功能：流式解析JSONL事件日志，每行一个Record
// 说明：空行、非JSON行以及其他类型的MATSim事件（arrival、travelled等）被跳过
type JSONLStream struct {
	reader  *bufio.Reader
	line    int
	Skipped int // 跳过的记录数
}

func NewJSONLStream(r io.Reader) *JSONLStream {
	return &JSONLStream{reader: bufio.NewReaderSize(r, 64*1024)}
}

func (s *JSONLStream) Next() (Event, error) {
	for {
		raw, err := s.reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(raw) == 0 && err == io.EOF {
			return nil, io.EOF
		}
		s.line++
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}
		var r Record
		if jsonErr := json.Unmarshal(raw, &r); jsonErr != nil {
			return nil, fmt.Errorf("line %d: %w", s.line, jsonErr)
		}
		if !r.IsKnown() {
			s.Skipped++
			continue
		}
		return r.ToEvent()
	}
}
