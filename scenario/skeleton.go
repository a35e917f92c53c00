package scenario

import (
	"github.com/automoto/gaitkit/components"
	"github.com/go-gl/mathgl/mgl64"
)

// Bone is a joint of the rest skeleton: its parent and its offset from the
// parent in the parent's frame, in metres.
type Bone struct {
	Name   string
	Parent string
	Offset mgl64.Vec3
}

// RestBones is a stick-figure skeleton matching the reference joints of
// the default library, parents first. The toes rest 1.35m below the hips.
var RestBones = []Bone{
	{Name: "Hips"},
	{Name: "RightUpLeg", Parent: "Hips", Offset: mgl64.Vec3{0.1, -0.07, 0}},
	{Name: "RightLeg", Parent: "RightUpLeg", Offset: mgl64.Vec3{0, -0.6, 0}},
	{Name: "RightFoot", Parent: "RightLeg", Offset: mgl64.Vec3{0, -0.58, 0}},
	{Name: "RightToeBase", Parent: "RightFoot", Offset: mgl64.Vec3{0, -0.1, -0.14}},
	{Name: "LeftUpLeg", Parent: "Hips", Offset: mgl64.Vec3{-0.1, -0.07, 0}},
	{Name: "LeftLeg", Parent: "LeftUpLeg", Offset: mgl64.Vec3{0, -0.6, 0}},
	{Name: "LeftFoot", Parent: "LeftLeg", Offset: mgl64.Vec3{0, -0.58, 0}},
	{Name: "LeftToeBase", Parent: "LeftFoot", Offset: mgl64.Vec3{0, -0.1, -0.14}},
	{Name: "Spine", Parent: "Hips", Offset: mgl64.Vec3{0, 0.12, 0}},
	{Name: "Spine1", Parent: "Spine", Offset: mgl64.Vec3{0, 0.15, 0}},
	{Name: "Spine2", Parent: "Spine1", Offset: mgl64.Vec3{0, 0.15, 0}},
	{Name: "Neck", Parent: "Spine2", Offset: mgl64.Vec3{0, 0.2, 0}},
	{Name: "Head", Parent: "Neck", Offset: mgl64.Vec3{0, 0.12, 0}},
	{Name: "RightShoulder", Parent: "Spine2", Offset: mgl64.Vec3{0.05, 0.15, 0}},
	{Name: "RightArm", Parent: "RightShoulder", Offset: mgl64.Vec3{0.15, 0, 0}},
	{Name: "RightForeArm", Parent: "RightArm", Offset: mgl64.Vec3{0, -0.3, 0}},
	{Name: "RightHand", Parent: "RightForeArm", Offset: mgl64.Vec3{0, -0.28, 0}},
	{Name: "LeftShoulder", Parent: "Spine2", Offset: mgl64.Vec3{-0.05, 0.15, 0}},
	{Name: "LeftArm", Parent: "LeftShoulder", Offset: mgl64.Vec3{-0.15, 0, 0}},
	{Name: "LeftForeArm", Parent: "LeftArm", Offset: mgl64.Vec3{0, -0.3, 0}},
	{Name: "LeftHand", Parent: "LeftForeArm", Offset: mgl64.Vec3{0, -0.28, 0}},
}

// Skeleton poses RestBones from animator output and reports where each
// joint ended up, so it can stand in for a rendered skeleton as the
// animator's joint locator.
type Skeleton struct {
	bones     []Bone
	positions map[string]mgl64.Vec3
	rotations map[string]mgl64.Quat
}

var _ components.JointLocator = (*Skeleton)(nil)

// NewSkeleton builds the rest pose with the hips at hips.
func NewSkeleton(hips mgl64.Vec3) *Skeleton {
	s := &Skeleton{
		bones:     RestBones,
		positions: make(map[string]mgl64.Vec3, len(RestBones)),
		rotations: make(map[string]mgl64.Quat, len(RestBones)),
	}
	s.solve(hips, mgl64.QuatIdent(), nil)
	return s
}

// Apply poses the skeleton for the frame.
func (s *Skeleton) Apply(kin components.KinematicsData, pose *components.PoseData) {
	orientation := kin.Orientation
	if orientation.Len() == 0 {
		orientation = mgl64.QuatIdent()
	}
	root := kin.Position.Add(orientation.Rotate(pose.SkeletonOffset))
	s.solve(root, orientation, pose)
}

func (s *Skeleton) solve(root mgl64.Vec3, orientation mgl64.Quat, pose *components.PoseData) {
	for _, b := range s.bones {
		local := mgl64.QuatIdent()
		if pose != nil {
			if j, ok := pose.Joint(b.Name); ok {
				local = j.Rotation
			}
		}

		if b.Parent == "" {
			s.rotations[b.Name] = orientation.Mul(local)
			s.positions[b.Name] = root
			continue
		}
		parentRot := s.rotations[b.Parent]
		s.positions[b.Name] = s.positions[b.Parent].Add(parentRot.Rotate(b.Offset))
		s.rotations[b.Name] = parentRot.Mul(local)
	}
}

// JointPosition returns the world position of the named joint.
func (s *Skeleton) JointPosition(name string) (mgl64.Vec3, bool) {
	p, ok := s.positions[name]
	return p, ok
}

// Bones lists the skeleton's bones, parents first.
func (s *Skeleton) Bones() []Bone {
	return s.bones
}
